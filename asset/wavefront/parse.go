package wavefront

import (
	"strconv"

	"github.com/achilleasa/wavefront/types"
)

// Parse a float scalar value.
func parseFloat32(keyword, token string) (float32, error) {
	val, err := strconv.ParseFloat(token, 32)
	if err != nil {
		return 0, fieldError(ErrMalformedNumber, err, `could not parse %q argument %q as a number`, keyword, token)
	}
	return float32(val), nil
}

// Parse an integer scalar value.
func parseInt(keyword, token string) (int, error) {
	val, err := strconv.ParseInt(token, 10, 32)
	if err != nil {
		return 0, fieldError(ErrMalformedNumber, err, `could not parse %q argument %q as an integer`, keyword, token)
	}
	return int(val), nil
}

// Parse the first 3 tokens as a Vec3 row. Extra tokens are left to the caller.
func parseVec3(keyword string, tokens []string) (types.Vec3, error) {
	if len(tokens) < 3 {
		return types.Vec3{}, fieldError(ErrMalformedNumber, nil, `unsupported syntax for "%s"; expected 3 arguments; got %d`, keyword, len(tokens))
	}

	v := types.Vec3{}
	for tokIdx := 0; tokIdx < 3; tokIdx++ {
		coord, err := parseFloat32(keyword, tokens[tokIdx])
		if err != nil {
			return v, err
		}
		v[tokIdx] = coord
	}
	return v, nil
}

// Parse a texture coordinate row. The v component defaults to 0 and an
// optional w component is validated but dropped.
func parseTexcoord(keyword string, tokens []string) (types.Vec2, error) {
	if len(tokens) < 1 || len(tokens) > 3 {
		return types.Vec2{}, fieldError(ErrMalformedNumber, nil, `unsupported syntax for "%s"; expected 1 to 3 arguments; got %d`, keyword, len(tokens))
	}

	var coords [3]float32
	for tokIdx, token := range tokens {
		coord, err := parseFloat32(keyword, token)
		if err != nil {
			return types.Vec2{}, err
		}
		coords[tokIdx] = coord
	}
	return types.XY(coords[0], coords[1]), nil
}

// Parse a colour row that may be given as a single value, replicated to all
// channels, or as 3 separate values.
func parseColor(keyword string, tokens []string) (types.Vec3, error) {
	switch len(tokens) {
	case 1:
		val, err := parseFloat32(keyword, tokens[0])
		if err != nil {
			return types.Vec3{}, err
		}
		return types.Splat3(val), nil
	case 3:
		return parseVec3(keyword, tokens)
	}
	return types.Vec3{}, fieldError(ErrMalformedNumber, nil, `unsupported syntax for "%s"; expected 1 or 3 arguments; got %d`, keyword, len(tokens))
}
