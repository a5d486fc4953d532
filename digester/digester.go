package digester

import (
	"context"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"sync"

	"github.com/hkanpak21/funhash/ikh"
)

// SidecarExt is appended to a file path to name its digest
// file.
const SidecarExt = ".ikh"

// CalculateDigest streams the file at path through h and
// returns the hex digest. Returns empty string with no error if
// the file does not exist.
func CalculateDigest(
	h ikh.Hasher,
	path string,
) (result string, retErr error) {
	const errCtx = "calculating digest"

	fi, err := os.Open(path) //nolint:gosec // path is caller-provided
	if errors.Is(err, os.ErrNotExist) {
		return "", nil
	}

	if err != nil {
		return "", fmt.Errorf("%s: %w", errCtx, err)
	}

	defer func() {
		if closeErr := fi.Close(); closeErr != nil && retErr == nil {
			retErr = fmt.Errorf("%s: %w", errCtx, closeErr)
		}
	}()

	hs := h.New()

	if _, err := io.Copy(hs, fi); err != nil {
		return "", fmt.Errorf("%s: %w", errCtx, err)
	}

	return hex.EncodeToString(hs.Sum(nil)), nil
}

// GetDigest reads the digest stored in the sidecar of path.
// Returns empty string with no error if there is no sidecar.
func GetDigest(path string) (string, error) {
	const errCtx = "getting stored digest"

	digest, err := os.ReadFile(path + SidecarExt) //nolint:gosec // caller-provided
	if errors.Is(err, os.ErrNotExist) {
		return "", nil
	}

	if err != nil {
		return "", fmt.Errorf("%s: %w", errCtx, err)
	}

	return string(digest), nil
}

// VerifyDigest reports whether the file still matches its
// stored digest. A file without a sidecar does not match.
func VerifyDigest(h ikh.Hasher, path string) (bool, error) {
	const errCtx = "verifying digest"

	stored, err := GetDigest(path)
	if err != nil {
		return false, fmt.Errorf("%s: %w", errCtx, err)
	}

	if stored == "" {
		return false, nil
	}

	calc, err := CalculateDigest(h, path)
	if err != nil {
		return false, fmt.Errorf("%s: %w", errCtx, err)
	}

	return calc == stored, nil
}

// SaveDigest calculates the digest of a file and writes it to
// its sidecar.
func SaveDigest(h ikh.Hasher, path string) error {
	const errCtx = "saving digest"

	digest, err := CalculateDigest(h, path)
	if err != nil {
		return fmt.Errorf("%s: %w", errCtx, err)
	}

	if digest == "" {
		return fmt.Errorf("%s: %s: %w", errCtx, path, os.ErrNotExist)
	}

	if err := os.WriteFile(path+SidecarExt, []byte(digest), 0o600); err != nil {
		return fmt.Errorf("%s: %w", errCtx, err)
	}

	return nil
}

// Result is the digest of one file. Digest is empty when the
// file does not exist.
type Result struct {
	Path   string `json:"path"   yaml:"path"`
	Digest string `json:"digest" yaml:"digest"`
}

// DigestFiles hashes paths with at most parallelism files open
// at a time. Results keep the order of paths. Every failure is
// collected; the returned error counts them and wraps the
// first.
func DigestFiles(
	ctx context.Context,
	h ikh.Hasher,
	paths []string,
	parallelism int,
) ([]Result, error) {
	const errCtx = "digesting files"

	if parallelism <= 0 {
		parallelism = 1
	}

	slog.Debug(
		"digesting files",
		"count", len(paths),
		"parallelism", parallelism,
	)

	results := make([]Result, len(paths))

	var (
		wg   sync.WaitGroup
		mu   sync.Mutex
		errs []error
	)

	sem := make(chan struct{}, parallelism)

loop:
	for i, pa := range paths {
		select {
		case sem <- struct{}{}:
		case <-ctx.Done():
			mu.Lock()
			errs = append(errs, ctx.Err())
			mu.Unlock()

			break loop
		}

		if ctx.Err() != nil {
			<-sem

			mu.Lock()
			errs = append(errs, ctx.Err())
			mu.Unlock()

			break
		}

		wg.Add(1)

		go func(idx int, path string) {
			defer wg.Done()
			defer func() { <-sem }()

			digest, err := CalculateDigest(h, path)
			if err != nil {
				mu.Lock()
				errs = append(errs, fmt.Errorf("%s: %w", path, err))
				mu.Unlock()

				return
			}

			results[idx] = Result{Path: path, Digest: digest}
		}(i, pa)
	}

	wg.Wait()

	if len(errs) > 0 {
		return results, fmt.Errorf(
			"%s: %d errors, first: %w",
			errCtx, len(errs), errs[0],
		)
	}

	return results, nil
}
