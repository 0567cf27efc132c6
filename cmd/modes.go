package cmd

import (
	"fmt"
	"io"

	"github.com/pable/brtiers/internal/model"
	"github.com/pable/brtiers/internal/storage"
)

// modeRun is a finished batch for one mode.
type modeRun interface {
	Save(db *storage.DB) error
	Print(w io.Writer)
}

// runModes runs batch for each mode in turn. A failed mode is logged and the
// next one still runs; the error counts the failures.
func runModes(w io.Writer, modes []model.MatchMode, noDB bool, batch func(model.MatchMode) (modeRun, error)) error {
	var db *storage.DB
	if !noDB {
		var err error
		if db, err = openSnapshot(); err != nil {
			return err
		}
		defer db.Close()
	}

	failed := 0
	for _, mode := range modes {
		res, err := batch(mode)
		if err != nil {
			log.Error().Err(err).Stringer("mode", mode).Msg("mode failed")
			failed++
			continue
		}
		if db != nil {
			if err := res.Save(db); err != nil {
				log.Error().Err(err).Stringer("mode", mode).Msg("record run")
				failed++
				continue
			}
		}
		res.Print(w)
		fmt.Fprintf(w, "Written to %s\n", cfg.ModeDir(mode.String()))
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d modes failed", failed, len(modes))
	}
	return nil
}
