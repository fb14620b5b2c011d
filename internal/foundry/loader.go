package foundry

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/rs/zerolog"

	"geofoundry/internal/tensor"
)

// Option configures Load.
type Option func(*loadOptions)

type loadOptions struct {
	logger zerolog.Logger
}

// WithLogger sets the logger used while loading. The default discards.
func WithLogger(l zerolog.Logger) Option {
	return func(o *loadOptions) { o.logger = l }
}

// StemFor derives the storage key of a file: its name without extension,
// except that bnd.txt (the boundary names) becomes bndname so it does not
// replace the numeric bnd.npy.
func StemFor(name string) string {
	if name == StemBnd+tensor.TextExt {
		return StemBoundaryName
	}
	return strings.TrimSuffix(name, filepath.Ext(name))
}

// SourceName is the inverse of StemFor for an array of the given kind.
func SourceName(stem string, kind tensor.Kind) string {
	ext := tensor.NPYExt
	if kind == tensor.Strings {
		ext = tensor.TextExt
	}
	if stem == StemBoundaryName && kind == tensor.Strings {
		stem = StemBnd
	}
	return stem + ext
}

// Load reads every .npy and .txt file of fold. Any failure discards all
// work: either the complete Foundry is returned or an error.
func Load(fold string, opts ...Option) (*Foundry, error) {
	o := loadOptions{logger: zerolog.Nop()}
	for _, opt := range opts {
		opt(&o)
	}
	start := time.Now()
	log := o.logger.With().Str("fold", fold).Logger()
	log.Info().Msg("loading foundry")

	// 1. Folder must exist
	info, err := os.Stat(fold)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, &NotFoundError{Path: fold}
		}
		return nil, fmt.Errorf("stat foundry folder: %w", err)
	}
	if !info.IsDir() {
		return nil, &NotFoundError{Path: fold, Err: errors.New("not a directory")}
	}

	entries, err := os.ReadDir(fold)
	if err != nil {
		return nil, fmt.Errorf("list foundry folder: %w", err)
	}

	// 2. Decode recognized files in listing order
	f := &Foundry{
		fold:   fold,
		arrays: make(map[string]*tensor.Array),
	}
	sources := make(map[string]string)
	var total uint64

	for _, e := range entries {
		name := e.Name()
		if !tensor.Recognized(name) {
			continue
		}
		path := filepath.Join(fold, name)
		if !isRegular(e, path) {
			continue
		}

		stem := StemFor(name)
		if prev, dup := sources[stem]; dup {
			return nil, &CollisionError{Stem: stem, First: prev, Second: name}
		}

		a, err := tensor.Decode(path)
		if err != nil {
			return nil, fmt.Errorf("load %s: %w", stem, err)
		}
		sources[stem] = name
		f.arrays[stem] = a
		f.stems = append(f.stems, stem)
		total += uint64(a.ByteLen())

		log.Debug().
			Str("stem", stem).
			Str("shape", a.ShapeString()).
			Str("path", path).
			Msg("loaded array")
	}

	// 3. Dictionaries
	f.meshNames = BuildNameDict(DictMesh, f.arrays[StemMeshName])
	f.boundaryNames = BuildNameDict(DictBoundary, f.arrays[StemBoundaryName])
	f.ordinalNames = NewNameDict(DictOrdinal, Ordinals)

	log.Info().
		Int("arrays", len(f.stems)).
		Str("size", humanize.Bytes(total)).
		Int("meshes", f.meshNames.Len()).
		Int("boundaries", f.boundaryNames.Len()).
		Dur("elapsed", time.Since(start)).
		Msg("foundry loaded")
	return f, nil
}

// isRegular follows symlinks so linked arrays load like plain files.
func isRegular(e fs.DirEntry, path string) bool {
	if e.Type().IsRegular() {
		return true
	}
	if e.Type()&fs.ModeSymlink == 0 {
		return false
	}
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}
