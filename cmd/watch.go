package cmd

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"path/filepath"
	"time"

	"github.com/achilleasa/wavefront/asset/wavefront"
	"github.com/fsnotify/fsnotify"
	"github.com/urfave/cli"
)

// Reload a geometry file and display mesh info whenever it or one of its
// material libraries changes.
func Watch(ctx *cli.Context) error {
	setupLogging(ctx)

	if ctx.NArg() != 1 {
		return errors.New("watch expects a single geometry file")
	}

	opts, err := loadOptions(ctx)
	if err != nil {
		return err
	}

	sigCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	path := ctx.Args().First()
	return watchFile(sigCtx, path, opts, ctx.Duration("debounce"), func(res *wavefront.Result, err error) {
		if err != nil {
			logger.Error(err.Error())
			return
		}
		printResult(ctx.App.Writer, path, res)
	})
}

// Load path and invoke report with the outcome. The file is reloaded when
// it or one of its local material libraries is modified, after no further
// changes are seen for the debounce interval. Returns when ctx is done.
func watchFile(ctx context.Context, path string, opts wavefront.LoadOptions, debounce time.Duration, report func(*wavefront.Result, error)) error {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return err
	}
	dir := filepath.Dir(absPath)

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()

	if err = watcher.Add(dir); err != nil {
		return err
	}

	watched := map[string]bool{absPath: true}
	reload := func() {
		res, err := wavefront.LoadContext(ctx, absPath, opts)
		if err == nil {
			watched = map[string]bool{absPath: true}
			for _, lib := range res.MaterialLibraries {
				if !filepath.IsAbs(lib) {
					lib = filepath.Join(dir, lib)
				}
				watched[filepath.Clean(lib)] = true
			}
		}
		report(res, err)
	}

	reload()
	logger.Noticef("watching %s for changes", absPath)

	var reloadCh <-chan time.Time
	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !watched[filepath.Clean(event.Name)] || event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			logger.Debugf("detected %s on %s", event.Op, event.Name)
			reloadCh = time.After(debounce)
		case <-reloadCh:
			reloadCh = nil
			logger.Infof("reloading %s", absPath)
			reload()
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Warningf("watcher error: %s", err)
		}
	}
}
