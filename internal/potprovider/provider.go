package potprovider

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/docker/docker/api/types/container"
	"github.com/docker/docker/api/types/filters"
	"github.com/docker/docker/api/types/image"
	"github.com/docker/docker/client"
	"github.com/docker/go-connections/nat"

	"github.com/tubefetch/tubefetch/internal/config"
)

// Timeouts for Docker operations
const (
	pingTimeout    = 8 * time.Second
	pullTimeout    = 10 * time.Minute
	stopTimeoutSec = 5
)

// Manager owns the provider container lifecycle for one application run
type Manager struct {
	cfg        config.PotProvider
	cli        client.APIClient
	httpClient *http.Client
}

// New connects to the Docker daemon from the environment. The returned error
// only covers client construction; daemon reachability is checked lazily.
func New(cfg config.PotProvider) (*Manager, error) {
	cli, err := client.NewClientWithOpts(client.FromEnv, client.WithAPIVersionNegotiation())
	if err != nil {
		return nil, fmt.Errorf("failed to create docker client: %w", err)
	}
	return &Manager{
		cfg:        cfg,
		cli:        cli,
		httpClient: &http.Client{},
	}, nil
}

// Available reports whether the Docker daemon answers a ping
func (m *Manager) Available(ctx context.Context) bool {
	ctx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()

	_, err := m.cli.Ping(ctx)
	if err != nil {
		slog.Info("docker daemon unreachable, skipping PO token provider", "err", err)
	}
	return err == nil
}

// Enable brings the provider up and returns the extractor arguments to wire
// into the download command. It never fails the download: any problem is
// logged and nil is returned so the caller proceeds without PO tokens.
func (m *Manager) Enable(ctx context.Context) []string {
	if !m.cfg.Enabled {
		slog.Info("PO token provider disabled in config, proceeding without PO tokens")
		return nil
	}

	if !m.Available(ctx) {
		return nil
	}

	if err := m.ensureContainer(ctx); err != nil {
		slog.Warn("could not start PO token provider container", "err", err)
		return nil
	}

	baseURL := m.cfg.ResolvedBaseURL()
	budget := time.Duration(m.cfg.ReadinessTimeoutSecs) * time.Second
	if err := waitReady(ctx, m.httpClient, baseURL, budget); err != nil {
		slog.Warn("PO token provider not ready, proceeding without it", "base_url", baseURL, "err", err)
		return nil
	}

	slog.Info("PO token provider enabled", "base_url", baseURL,
		"disable_innertube", m.cfg.DisableInnertube)
	return ExtractorArgs(baseURL, m.cfg.DisableInnertube)
}

// ensureContainer reuses a running container, starts a stopped one, or pulls
// the image and creates a fresh container with the required port mapping
func (m *Manager) ensureContainer(ctx context.Context) error {
	name := m.cfg.DockerContainerName

	containers, err := m.cli.ContainerList(ctx, container.ListOptions{
		All:     true,
		Filters: filters.NewArgs(filters.Arg("name", "^/"+name+"$")),
	})
	if err != nil {
		return fmt.Errorf("failed to list containers: %w", err)
	}

	if len(containers) > 0 {
		existing := containers[0]
		if existing.State == "running" {
			slog.Info("PO token provider container already running",
				"container", name, "status", existing.Status)
			return nil
		}
		if err := m.cli.ContainerStart(ctx, existing.ID, container.StartOptions{}); err != nil {
			return fmt.Errorf("failed to start existing container %s: %w", name, err)
		}
		slog.Info("started existing PO token provider container", "container", name)
		return nil
	}

	if err := m.pullImage(ctx); err != nil {
		return err
	}

	port, err := nat.NewPort("tcp", fmt.Sprint(m.cfg.DockerPort))
	if err != nil {
		return fmt.Errorf("invalid provider port %d: %w", m.cfg.DockerPort, err)
	}

	init := true
	resp, err := m.cli.ContainerCreate(ctx,
		&container.Config{
			Image:        m.cfg.DockerImage,
			ExposedPorts: nat.PortSet{port: struct{}{}},
		},
		&container.HostConfig{
			PortBindings: nat.PortMap{
				port: []nat.PortBinding{{HostIP: "127.0.0.1", HostPort: fmt.Sprint(m.cfg.DockerPort)}},
			},
			RestartPolicy: container.RestartPolicy{Name: container.RestartPolicyUnlessStopped},
			Init:          &init,
		},
		nil, nil, name,
	)
	if err != nil {
		return fmt.Errorf("failed to create container %s: %w", name, err)
	}

	if err := m.cli.ContainerStart(ctx, resp.ID, container.StartOptions{}); err != nil {
		return fmt.Errorf("failed to start container %s: %w", name, err)
	}

	slog.Info("started new PO token provider container",
		"container", name, "image", m.cfg.DockerImage, "port", m.cfg.DockerPort)
	return nil
}

func (m *Manager) pullImage(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, pullTimeout)
	defer cancel()

	out, err := m.cli.ImagePull(ctx, m.cfg.DockerImage, image.PullOptions{})
	if err != nil {
		return fmt.Errorf("failed to pull image %s: %w", m.cfg.DockerImage, err)
	}
	defer out.Close()

	// The pull stream must be drained for the pull to complete
	if _, err := io.Copy(io.Discard, out); err != nil {
		return fmt.Errorf("image pull for %s interrupted: %w", m.cfg.DockerImage, err)
	}
	return nil
}

// StopIfConfigured stops the provider container on application exit when
// stop_on_exit is set. Best effort.
func (m *Manager) StopIfConfigured(ctx context.Context) {
	if !m.cfg.Enabled || !m.cfg.StopOnExit {
		return
	}

	name := m.cfg.DockerContainerName
	containers, err := m.cli.ContainerList(ctx, container.ListOptions{
		Filters: filters.NewArgs(filters.Arg("name", "^/"+name+"$")),
	})
	if err != nil || len(containers) == 0 {
		return
	}

	timeout := stopTimeoutSec
	if err := m.cli.ContainerStop(ctx, containers[0].ID, container.StopOptions{Timeout: &timeout}); err != nil {
		slog.Info("could not stop PO token provider container", "container", name, "err", err)
		return
	}
	slog.Info("stopped PO token provider container on exit", "container", name)
}

// ExtractorArgs returns the yt-dlp extractor arguments wiring the provider
// at baseURL into the download, matching the CLI syntax the bgutil plugin
// expects
func ExtractorArgs(baseURL string, disableInnertube bool) []string {
	provider := "youtubepot-bgutilhttp:base_url=" + baseURL
	if disableInnertube {
		provider += ";disable_innertube=1"
	}
	return []string{
		provider,
		"youtube:player_client=default,mweb",
	}
}
