package filesystem

import (
	"context"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/cespare/xxhash/v2"
	"golang.org/x/sync/errgroup"

	"ikonograf/internal/application"
	"ikonograf/internal/domain"
	"ikonograf/internal/ports"
)

// Hasher builds the duplicate engine's hashed inventory. File contents are
// digested with xxhash64: equality testing only, collision risk accepted.
// Hashing runs on a bounded worker pool; results are folded into the
// inventory by a single aggregator, so traversal order never changes the
// outcome.
type Hasher struct {
	workers int
}

var _ ports.Hasher = (*Hasher)(nil)

// NewHasher creates a hasher with a bounded worker pool. workers <= 0 means
// one worker per CPU.
func NewHasher(workers int) *Hasher {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	return &Hasher{workers: workers}
}

type hashJob struct {
	id        string
	size      int
	rel       string
	abs       string
	isSymlink bool
	target    string
}

type hashResult struct {
	hashJob
	hash    string
	byteLen int64
	err     error
}

// HashTheme hashes every matching icon file in the theme tree and returns
// one FileInfo per (identifier, effective size). Symbolic (monochrome)
// artwork is left to the symbolic classifier and excluded here. Per-file
// read failures are reported and excluded; the batch continues.
func (h *Hasher) HashTheme(ctx context.Context, theme domain.Theme, idx domain.DirectoryIndex, contexts domain.ContextManifest) (domain.HashedInventory, []error, error) {
	jobs, err := h.collectJobs(theme, idx, contexts)
	if err != nil {
		return nil, nil, err
	}

	results := make(chan hashResult)
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(h.workers)

	go func() {
		defer close(results)
		for _, job := range jobs {
			job := job
			g.Go(func() error {
				res := hashResult{hashJob: job}
				res.hash, res.byteLen, res.err = hashFile(job.abs)
				select {
				case results <- res:
				case <-gctx.Done():
				}
				return nil
			})
		}
		g.Wait()
	}()

	inv := make(domain.HashedInventory)
	var fileErrs []error
	for res := range results {
		if res.err != nil {
			fileErrs = append(fileErrs, &application.FileReadError{Path: res.rel, Err: res.err})
			continue
		}
		icon, ok := inv[res.id]
		if !ok {
			icon = &domain.HashedIcon{ID: res.id, Files: make(map[int]domain.FileInfo)}
			inv[res.id] = icon
		}
		// One representative file per size; ties go to the lexicographically
		// smallest path so results are independent of worker scheduling.
		if existing, ok := icon.Files[res.size]; ok && existing.RelPath <= res.rel {
			continue
		}
		icon.Files[res.size] = domain.FileInfo{
			RelPath:       res.rel,
			Hash:          res.hash,
			ByteLen:       res.byteLen,
			IsSymlink:     res.isSymlink,
			SymlinkTarget: res.target,
		}
	}
	return inv, fileErrs, nil
}

// collectJobs walks the tree single-threaded, matching files against the
// directory index the same way the scanner does.
func (h *Hasher) collectJobs(theme domain.Theme, idx domain.DirectoryIndex, contexts domain.ContextManifest) ([]hashJob, error) {
	var jobs []hashJob
	var fatal error
	err := filepath.WalkDir(theme.Dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return nil
		}
		name := d.Name()
		if !domain.IsIconFile(name) {
			return nil
		}
		rel, relErr := filepath.Rel(theme.Dir, path)
		if relErr != nil {
			return nil
		}
		rel = filepath.ToSlash(rel)
		if isSymbolicDir(filepath.Dir(rel)) || strings.HasSuffix(domain.Stem(name), "-symbolic") {
			return nil
		}

		entry, ok := idx.Lookup(parentDir(rel))
		if !ok {
			return nil
		}
		context := ""
		if entry.Context != "" {
			id, ok := contexts.Resolve(entry.Context)
			if !ok {
				fatal = &application.UnknownContextError{Theme: theme.ID, RawContext: entry.Context}
				return fs.SkipAll
			}
			context = id
		}

		job := hashJob{
			id:   domain.Identifier(theme.ID, context, name),
			size: entry.EffectiveSize(),
			rel:  rel,
			abs:  path,
		}
		if d.Type()&fs.ModeSymlink != 0 {
			job.isSymlink = true
			if target, linkErr := os.Readlink(path); linkErr == nil {
				job.target = target
			}
		}
		jobs = append(jobs, job)
		return nil
	})
	if err != nil {
		return nil, err
	}
	if fatal != nil {
		return nil, fatal
	}
	return jobs, nil
}

func hashFile(path string) (string, int64, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", 0, err
	}
	defer f.Close()

	digest := xxhash.New()
	n, err := io.Copy(digest, f)
	if err != nil {
		return "", 0, err
	}
	return fmt.Sprintf("%016x", digest.Sum64()), n, nil
}
