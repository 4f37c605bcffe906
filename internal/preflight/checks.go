package preflight

import (
	"context"
	"errors"
	"fmt"
	"net"
	"os"
	"strings"
	"time"

	"golang.org/x/sys/unix"

	"qbsort/internal/config"
	"qbsort/internal/logging"
	"qbsort/internal/qbittorrent"
)

// CheckQBittorrent verifies WebUI connectivity and credentials. It performs
// the same login handshake the hook uses and, on success, reads the server
// version. A single attempt, no retries.
func CheckQBittorrent(ctx context.Context, cfg *config.Config) Result {
	const name = "qBittorrent"

	if strings.TrimSpace(cfg.QBittorrent.Host) == "" {
		return Result{Name: name, Detail: "missing host"}
	}

	checkCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	client, err := qbittorrent.New(cfg, logging.NewNop())
	if err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("client setup failed (%v)", err)}
	}

	session, err := client.Login(checkCtx)
	if err != nil {
		return Result{Name: name, Detail: summarizeLoginError(err)}
	}

	version, err := client.Version(checkCtx, session)
	if err != nil {
		return Result{Name: name, Passed: true, Detail: "authenticated"}
	}
	return Result{Name: name, Passed: true, Detail: fmt.Sprintf("authenticated (qBittorrent %s)", version)}
}

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

// summarizeLoginError produces a human-readable summary for login failures.
func summarizeLoginError(err error) string {
	if errors.Is(err, context.DeadlineExceeded) {
		return "login timed out (WebUI unresponsive)"
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return "login timed out (WebUI unreachable)"
	}
	return err.Error()
}
