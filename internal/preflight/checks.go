package preflight

import (
	"context"
	"errors"
	"fmt"
	"net"
	"os"
	"time"

	"github.com/dustin/go-humanize"
	"golang.org/x/sys/unix"

	"comicsdb/internal/config"
	"comicsdb/internal/importer"
	"comicsdb/internal/marvel"
)

// CheckDirectoryAccess verifies that the directory exists and is readable/writable.
func CheckDirectoryAccess(name, path string) Result {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Result{Name: name, Detail: fmt.Sprintf("%s (error: does not exist)", path)}
		}
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: stat: %v)", path, err)}
	}
	if !info.IsDir() {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: is not a directory)", path)}
	}
	if err := unix.Access(path, unix.R_OK|unix.W_OK|unix.X_OK); err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: insufficient permissions: %v)", path, err)}
	}
	return Result{Name: name, Passed: true, Detail: fmt.Sprintf("%s (read/write ok)", path)}
}

// CheckFreeSpace verifies the filesystem holding path has at least minBytes
// available to unprivileged users. A zero minimum only reports the figure.
func CheckFreeSpace(name, path string, minBytes uint64) Result {
	var stat unix.Statfs_t
	if err := unix.Statfs(path, &stat); err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: statfs: %v)", path, err)}
	}
	available := stat.Bavail * uint64(stat.Bsize)
	detail := fmt.Sprintf("%s free", humanize.IBytes(available))
	if available < minBytes {
		return Result{Name: name, Detail: fmt.Sprintf("%s, need %s", detail, humanize.IBytes(minBytes))}
	}
	return Result{Name: name, Passed: true, Detail: detail}
}

// CheckEditorCredit verifies the configured editor credit creator and role
// exist in the catalog.
func CheckEditorCredit(ctx context.Context, cat importer.Catalog, cfg config.Import) Result {
	const name = "Editor credit"

	if cfg.EditorCreditCreator == "" {
		return Result{Name: name, Passed: true, Skipped: true, Detail: "disabled"}
	}
	creator, err := cat.CreatorBySlug(ctx, cfg.EditorCreditCreator)
	if err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("lookup failed (%v)", err)}
	}
	if creator == nil {
		return Result{Name: name, Detail: fmt.Sprintf("creator %q not in catalog", cfg.EditorCreditCreator)}
	}
	role, err := cat.RoleByName(ctx, cfg.EditorCreditRole)
	if err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("lookup failed (%v)", err)}
	}
	if role == nil {
		return Result{Name: name, Detail: fmt.Sprintf("role %q not in catalog", cfg.EditorCreditRole)}
	}
	return Result{Name: name, Passed: true, Detail: fmt.Sprintf("%s as %s", creator.Name, role.Name)}
}

// CheckMarvel verifies the Marvel credentials are configured and, when a
// client is supplied, that the API accepts them. It uses a 10-second timeout
// and a single attempt.
func CheckMarvel(ctx context.Context, cfg *config.Config, client Pinger) Result {
	const name = "Marvel API"

	if err := cfg.ValidateMarvel(); err != nil {
		return Result{Name: name, Passed: true, Skipped: true, Detail: "keys missing; only --file imports will work"}
	}
	if client == nil {
		return Result{Name: name, Passed: true, Skipped: true, Detail: "keys configured (not contacted)"}
	}

	checkCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	if err := client.Ping(checkCtx); err != nil {
		return Result{Name: name, Detail: summarizeMarvelError(err)}
	}
	return Result{Name: name, Passed: true, Detail: "API reachable"}
}

// summarizeMarvelError produces a human-readable summary for API check failures.
func summarizeMarvelError(err error) string {
	if errors.Is(err, marvel.ErrUnauthorized) {
		return "keys rejected (check public_key and private_key)"
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return "check timed out (Marvel API unresponsive)"
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return "check timed out (Marvel API unreachable)"
	}
	return err.Error()
}
