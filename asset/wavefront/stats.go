package wavefront

import (
	"bytes"
	"fmt"
	"reflect"
	"strings"

	"github.com/olekukonko/tablewriter"
)

// Stats returns a table with the buffer sizes of each mesh.
func (r *Result) Stats() string {
	var buf bytes.Buffer
	table := tablewriter.NewWriter(&buf)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetAutoFormatHeaders(false)
	table.SetHeader([]string{"Mesh", "Object", "Vertices", "Primitives", "Indices", "Material", "Extent", "Size"})

	var totalVerts, totalPrims, totalIndices int
	var sizes []interface{}
	for _, mesh := range r.Meshes {
		totalVerts += mesh.NumVertices()
		totalPrims += mesh.NumPrimitives()
		totalIndices += len(mesh.Indices)
		meshBuffers := mesh.buffers()
		sizes = append(sizes, meshBuffers...)

		table.Append([]string{
			mesh.Name,
			mesh.Object,
			fmt.Sprint(mesh.NumVertices()),
			fmt.Sprint(mesh.NumPrimitives()),
			fmt.Sprint(len(mesh.Indices)),
			r.materialLabel(mesh),
			fmt.Sprintf("%.3f", mesh.Extent()),
			fmtSize(meshBuffers...),
		})
	}
	table.SetFooter([]string{
		"Total", " ",
		fmt.Sprint(totalVerts),
		fmt.Sprint(totalPrims),
		fmt.Sprint(totalIndices),
		fmt.Sprint(r.Materials.Len()),
		" ",
		strings.TrimLeft(fmtSize(sizes...), " "),
	})

	table.Render()
	return buf.String()
}

// Describe the material assignment of a mesh.
func (r *Result) materialLabel(mesh *Mesh) string {
	id, uniform := mesh.UniformMaterial()
	switch {
	case !uniform:
		return "(mixed)"
	case id == NoMaterial:
		return "-"
	}
	return r.Materials.Get(id).Name
}

// The buffers owned by a mesh.
func (m *Mesh) buffers() []interface{} {
	return []interface{}{
		m.Positions, m.Normals, m.Texcoords, m.Colors,
		m.Indices, m.FaceArities, m.MaterialIDs, m.SmoothingGroups,
		m.PositionIndices, m.TexcoordIndices, m.NormalIndices,
	}
}

// Stats returns a table listing the materials and their texture maps.
func (t *MaterialTable) Stats() string {
	var buf bytes.Buffer
	table := tablewriter.NewWriter(&buf)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetAutoFormatHeaders(false)
	table.SetHeader([]string{"ID", "Material", "Diffuse", "Dissolve", "Illum", "Textures", "Other"})

	for id, mat := range t.Materials {
		illum := "-"
		if mat.IlluminationModel >= 0 {
			illum = fmt.Sprint(mat.IlluminationModel)
		}
		table.Append([]string{
			fmt.Sprint(id),
			mat.Name,
			fmt.Sprintf("%.3f %.3f %.3f", mat.Diffuse[0], mat.Diffuse[1], mat.Diffuse[2]),
			fmt.Sprintf("%.3f", mat.Dissolve),
			illum,
			strings.Join(mat.textureFiles(), ", "),
			fmt.Sprint(len(mat.UnknownParams)),
		})
	}
	table.SetFooter([]string{"Total", fmt.Sprint(t.Len()), " ", " ", " ", " ", " "})

	table.Render()
	return buf.String()
}

// The file names of all texture maps referenced by a material.
func (m *Material) textureFiles() []string {
	var files []string
	for _, entry := range []string{
		m.AmbientTexture, m.DiffuseTexture, m.SpecularTexture, m.EmissiveTexture,
		m.ShininessTexture, m.DissolveTexture, m.NormalTexture,
	} {
		if entry != "" {
			files = append(files, TextureFile(entry))
		}
	}
	return files
}

// Sum the total space used by a set of slices and return back a formatted
// value with the appropriate byte/kb/mb unit.
func fmtSize(items ...interface{}) string {
	var totalBytes float32 = 0.0
	for _, item := range items {
		t := reflect.TypeOf(item)
		v := reflect.ValueOf(item)
		if v.Len() == 0 {
			continue
		}

		totalBytes += float32(int(t.Elem().Size()) * v.Len())
	}

	if totalBytes < 1e3 {
		return fmt.Sprintf("%3d bytes", int(totalBytes))
	} else if totalBytes < 1e6 {
		return fmt.Sprintf("%3.1f kb", totalBytes/1e3)
	}
	return fmt.Sprintf("%5.1f mb", totalBytes/1e6)
}
