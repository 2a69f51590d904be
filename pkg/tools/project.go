package tools

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/docker/docker/api/types"
	"github.com/docker/docker/api/types/container"
	"github.com/docker/docker/api/types/image"
	"github.com/docker/docker/api/types/network"
	"github.com/docker/docker/api/types/volume"
	"github.com/docker/go-units"
)

// The projector flattens engine-native responses into fixed,
// JSON-serializable payloads so callers never see the SDK's nested
// structures and stay insulated from engine version drift. Everything
// in this file is pure and deterministic.

// ContainerSummary is one entry of list_containers.
type ContainerSummary struct {
	ID      string   `json:"id"`
	Name    string   `json:"name"`
	Image   string   `json:"image"`
	State   string   `json:"state"`
	Status  string   `json:"status"`
	Created string   `json:"created"`
	Ports   []string `json:"ports,omitempty"`
}

// CreatedContainer acknowledges create_container / run_container.
type CreatedContainer struct {
	ID       string   `json:"id"`
	Name     string   `json:"name,omitempty"`
	Status   string   `json:"status"`
	Warnings []string `json:"warnings,omitempty"`
}

// Ack acknowledges start/stop/remove/tag operations.
type Ack struct {
	ID     string `json:"id"`
	Status string `json:"status"`
}

// Inspection is the fixed shape of inspect_container.
type Inspection struct {
	ID              string          `json:"id"`
	Name            string          `json:"name"`
	Image           string          `json:"image"`
	Created         string          `json:"created"`
	State           InspectionState `json:"state"`
	NetworkSettings NetworkSettings `json:"network_settings"`
	Mounts          []MountPoint    `json:"mounts,omitempty"`
}

// InspectionState is the container state subset exposed to callers.
type InspectionState struct {
	Status     string `json:"status"`
	Running    bool   `json:"running"`
	ExitCode   int    `json:"exit_code"`
	Error      string `json:"error,omitempty"`
	StartedAt  string `json:"started_at,omitempty"`
	FinishedAt string `json:"finished_at,omitempty"`
}

// NetworkSettings is the network subset exposed to callers.
type NetworkSettings struct {
	IPAddress string            `json:"ip_address,omitempty"`
	Ports     []string          `json:"ports,omitempty"`
	Networks  map[string]string `json:"networks,omitempty"`
}

// MountPoint is one mount of an inspected container.
type MountPoint struct {
	Type        string `json:"type"`
	Source      string `json:"source"`
	Destination string `json:"destination"`
	Mode        string `json:"mode,omitempty"`
	RW          bool   `json:"rw"`
}

// ImageInfo is one entry of list_images.
type ImageInfo struct {
	ID        string   `json:"id"`
	Tags      []string `json:"tags,omitempty"`
	Created   string   `json:"created"`
	Size      string   `json:"size"`
	SizeBytes int64    `json:"size_bytes"`
}

// NetworkInfo is one entry of list_networks.
type NetworkInfo struct {
	ID         string   `json:"id"`
	Name       string   `json:"name"`
	Driver     string   `json:"driver"`
	Scope      string   `json:"scope"`
	Containers []string `json:"containers,omitempty"`
}

// VolumeInfo is one entry of list_volumes.
type VolumeInfo struct {
	Name       string `json:"name"`
	Driver     string `json:"driver"`
	Mountpoint string `json:"mountpoint"`
}

// PullResult is the payload of pull_image.
type PullResult struct {
	Reference string   `json:"reference"`
	ID        string   `json:"id,omitempty"`
	Tags      []string `json:"tags,omitempty"`
	Logs      []string `json:"logs,omitempty"`
}

// PushResult is the payload of push_image.
type PushResult struct {
	Reference string   `json:"reference"`
	Logs      []string `json:"logs,omitempty"`
}

// BuildResult is the payload of build_image.
type BuildResult struct {
	ImageID string   `json:"image_id,omitempty"`
	Tags    []string `json:"tags,omitempty"`
	Logs    []string `json:"logs"`
}

// StatsSnapshot is one point-in-time resource reading with a fixed
// numeric schema. Counters the platform does not report stay nil and
// serialize as absent rather than zero.
type StatsSnapshot struct {
	ReadAt           string   `json:"read_at"`
	CPUPercent       *float64 `json:"cpu_percent,omitempty"`
	MemoryUsageBytes *uint64  `json:"memory_usage_bytes,omitempty"`
	MemoryLimitBytes *uint64  `json:"memory_limit_bytes,omitempty"`
	MemoryPercent    *float64 `json:"memory_percent,omitempty"`
	NetworkRxBytes   *uint64  `json:"network_rx_bytes,omitempty"`
	NetworkTxBytes   *uint64  `json:"network_tx_bytes,omitempty"`
	BlockReadBytes   *uint64  `json:"block_read_bytes,omitempty"`
	BlockWriteBytes  *uint64  `json:"block_write_bytes,omitempty"`
	PIDs             *uint64  `json:"pids,omitempty"`
}

// StatsResult is the payload of get_container_stats. Stream holds the
// snapshots after the initial one and is only set in streaming mode.
type StatsResult struct {
	Snapshot StatsSnapshot   `json:"snapshot"`
	Stream   []StatsSnapshot `json:"stream,omitempty"`
}

func projectContainerSummary(c types.Container) ContainerSummary {
	name := ""
	if len(c.Names) > 0 {
		name = strings.TrimPrefix(c.Names[0], "/")
	}
	return ContainerSummary{
		ID:      c.ID,
		Name:    name,
		Image:   c.Image,
		State:   c.State,
		Status:  c.Status,
		Created: time.Unix(c.Created, 0).UTC().Format(time.RFC3339),
		Ports:   projectPorts(c.Ports),
	}
}

func projectPorts(ports []types.Port) []string {
	out := make([]string, 0, len(ports))
	for _, p := range ports {
		if p.PublicPort != 0 {
			ip := p.IP
			if ip == "" {
				ip = "0.0.0.0"
			}
			out = append(out, fmt.Sprintf("%s:%d->%d/%s", ip, p.PublicPort, p.PrivatePort, p.Type))
			continue
		}
		out = append(out, fmt.Sprintf("%d/%s", p.PrivatePort, p.Type))
	}
	sort.Strings(out)
	if len(out) == 0 {
		return nil
	}
	return out
}

func projectInspection(info types.ContainerJSON) Inspection {
	out := Inspection{}
	if info.ContainerJSONBase != nil {
		out.ID = info.ID
		out.Name = strings.TrimPrefix(info.Name, "/")
		out.Created = info.Created
		if info.State != nil {
			out.State = InspectionState{
				Status:     info.State.Status,
				Running:    info.State.Running,
				ExitCode:   info.State.ExitCode,
				Error:      info.State.Error,
				StartedAt:  info.State.StartedAt,
				FinishedAt: info.State.FinishedAt,
			}
		}
	}
	if info.Config != nil {
		out.Image = info.Config.Image
	}
	if info.NetworkSettings != nil {
		settings := NetworkSettings{
			IPAddress: info.NetworkSettings.IPAddress,
		}
		if len(info.NetworkSettings.Networks) > 0 {
			settings.Networks = make(map[string]string, len(info.NetworkSettings.Networks))
			for name, ep := range info.NetworkSettings.Networks {
				if ep == nil {
					continue
				}
				settings.Networks[name] = ep.IPAddress
			}
		}
		for port, bindings := range info.NetworkSettings.Ports {
			if len(bindings) == 0 {
				settings.Ports = append(settings.Ports, string(port))
				continue
			}
			for _, b := range bindings {
				settings.Ports = append(settings.Ports, fmt.Sprintf("%s:%s->%s", b.HostIP, b.HostPort, port))
			}
		}
		sort.Strings(settings.Ports)
		out.NetworkSettings = settings
	}
	for _, m := range info.Mounts {
		out.Mounts = append(out.Mounts, MountPoint{
			Type:        string(m.Type),
			Source:      m.Source,
			Destination: m.Destination,
			Mode:        m.Mode,
			RW:          m.RW,
		})
	}
	return out
}

func projectImageInfo(img image.Summary) ImageInfo {
	return ImageInfo{
		ID:        img.ID,
		Tags:      img.RepoTags,
		Created:   time.Unix(img.Created, 0).UTC().Format(time.RFC3339),
		Size:      units.HumanSize(float64(img.Size)),
		SizeBytes: img.Size,
	}
}

func projectNetworkInfo(n network.Summary) NetworkInfo {
	var containers []string
	for id := range n.Containers {
		containers = append(containers, id)
	}
	sort.Strings(containers)
	return NetworkInfo{
		ID:         n.ID,
		Name:       n.Name,
		Driver:     n.Driver,
		Scope:      n.Scope,
		Containers: containers,
	}
}

func projectVolumeInfo(v *volume.Volume) VolumeInfo {
	return VolumeInfo{
		Name:       v.Name,
		Driver:     v.Driver,
		Mountpoint: v.Mountpoint,
	}
}

func projectStats(s container.StatsResponse) StatsSnapshot {
	out := StatsSnapshot{}
	if !s.Read.IsZero() {
		out.ReadAt = s.Read.UTC().Format(time.RFC3339Nano)
	}

	// CPU percentage needs two readings; the stream's priming sample
	// has no PreCPUStats and yields no value.
	cpuDelta := float64(s.CPUStats.CPUUsage.TotalUsage) - float64(s.PreCPUStats.CPUUsage.TotalUsage)
	sysDelta := float64(s.CPUStats.SystemUsage) - float64(s.PreCPUStats.SystemUsage)
	if s.PreCPUStats.SystemUsage > 0 && sysDelta > 0 && cpuDelta >= 0 {
		online := float64(s.CPUStats.OnlineCPUs)
		if online == 0 {
			online = float64(len(s.CPUStats.CPUUsage.PercpuUsage))
		}
		if online > 0 {
			pct := cpuDelta / sysDelta * online * 100.0
			out.CPUPercent = &pct
		}
	}

	if s.MemoryStats.Limit > 0 {
		usage := s.MemoryStats.Usage
		limit := s.MemoryStats.Limit
		out.MemoryUsageBytes = &usage
		out.MemoryLimitBytes = &limit
		pct := float64(usage) / float64(limit) * 100.0
		out.MemoryPercent = &pct
	}

	if s.Networks != nil {
		var rx, tx uint64
		for _, ns := range s.Networks {
			rx += ns.RxBytes
			tx += ns.TxBytes
		}
		out.NetworkRxBytes = &rx
		out.NetworkTxBytes = &tx
	}

	if s.BlkioStats.IoServiceBytesRecursive != nil {
		var read, write uint64
		for _, entry := range s.BlkioStats.IoServiceBytesRecursive {
			switch strings.ToLower(entry.Op) {
			case "read":
				read += entry.Value
			case "write":
				write += entry.Value
			}
		}
		out.BlockReadBytes = &read
		out.BlockWriteBytes = &write
	}

	if s.PidsStats.Current > 0 {
		pids := s.PidsStats.Current
		out.PIDs = &pids
	}
	return out
}
