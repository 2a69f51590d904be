package tools

// Operation names.
const (
	OpListContainers       = "list_containers"
	OpCreateContainer      = "create_container"
	OpRunContainer         = "run_container"
	OpStartContainer       = "start_container"
	OpStopContainer        = "stop_container"
	OpRemoveContainer      = "remove_container"
	OpInspectContainer     = "inspect_container"
	OpGetContainerStats    = "get_container_stats"
	OpListImages           = "list_images"
	OpPullImage            = "pull_image"
	OpTagImage             = "tag_image"
	OpPushImage            = "push_image"
	OpBuildImage           = "build_image"
	OpListNetworks         = "list_networks"
	OpListVolumes          = "list_volumes"
	OpScanImage            = "scan_image"
	OpImageRecommendations = "image_recommendations"
)

// descriptors is the complete operation table, consulted by the
// dispatcher and rendered into tool schemas by the transports.
var descriptors = []Descriptor{
	{
		Name:        OpListContainers,
		Description: "List containers, optionally including stopped ones.",
		Kind:        KindSimple,
		Params: []Param{
			{Name: "all_containers", Type: TypeBool, Default: false, Description: "Include stopped containers"},
		},
	},
	{
		Name:        OpCreateContainer,
		Description: "Create a new container from an image without starting it.",
		Kind:        KindSimple,
		Params: []Param{
			{Name: "image", Type: TypeString, Required: true, Description: "Image reference to create the container from"},
			{Name: "command", Type: TypeString, Description: "Command to run, shell-style quoted"},
			{Name: "name", Type: TypeString, Description: "Container name"},
			{Name: "ports", Type: TypeStringMap, Description: "Port mapping, container port (e.g. \"80/tcp\") to host port"},
			{Name: "environment", Type: TypeStringMap, Description: "Environment variables"},
			{Name: "volumes", Type: TypeStringMap, Description: "Volume mapping, host path to container path (append :ro for read-only)"},
		},
	},
	{
		Name:        OpRunContainer,
		Description: "Create and start a container in one step.",
		Kind:        KindSimple,
		Params: []Param{
			{Name: "image", Type: TypeString, Required: true, Description: "Image reference to run"},
			{Name: "command", Type: TypeString, Description: "Command to run, shell-style quoted"},
			{Name: "name", Type: TypeString, Description: "Container name"},
			{Name: "ports", Type: TypeStringMap, Description: "Port mapping, container port (e.g. \"80/tcp\") to host port"},
			{Name: "environment", Type: TypeStringMap, Description: "Environment variables"},
			{Name: "volumes", Type: TypeStringMap, Description: "Volume mapping, host path to container path (append :ro for read-only)"},
		},
	},
	{
		Name:        OpStartContainer,
		Description: "Start a stopped container.",
		Kind:        KindSimple,
		Params: []Param{
			{Name: "container_id", Type: TypeString, Required: true, Description: "Container ID or name"},
		},
	},
	{
		Name:        OpStopContainer,
		Description: "Stop a running container.",
		Kind:        KindSimple,
		Params: []Param{
			{Name: "container_id", Type: TypeString, Required: true, Description: "Container ID or name"},
			{Name: "timeout", Type: TypeInt, Default: 10, Description: "Seconds to wait before killing the container"},
		},
	},
	{
		Name:        OpRemoveContainer,
		Description: "Remove a container.",
		Kind:        KindSimple,
		Params: []Param{
			{Name: "container_id", Type: TypeString, Required: true, Description: "Container ID or name"},
			{Name: "force", Type: TypeBool, Default: false, Description: "Force removal of a running container"},
		},
	},
	{
		Name:        OpInspectContainer,
		Description: "Inspect a container and return its state, network settings and mounts.",
		Kind:        KindSimple,
		Params: []Param{
			{Name: "container_id", Type: TypeString, Required: true, Description: "Container ID or name"},
		},
	},
	{
		Name:        OpGetContainerStats,
		Description: "Read resource usage of a running container, once or as a bounded stream of snapshots.",
		Kind:        KindStreaming,
		Params: []Param{
			{Name: "container_id", Type: TypeString, Required: true, Description: "Container ID or name"},
			{Name: "stream", Type: TypeBool, Default: false, Description: "Collect a sequence of snapshots instead of a single one"},
		},
	},
	{
		Name:        OpListImages,
		Description: "List all local images.",
		Kind:        KindSimple,
	},
	{
		Name:        OpPullImage,
		Description: "Pull an image from a registry.",
		Kind:        KindBounded,
		Params: []Param{
			{Name: "repository", Type: TypeString, Required: true, Description: "Repository to pull from"},
			{Name: "tag", Type: TypeString, Default: "latest", Description: "Tag to pull"},
		},
	},
	{
		Name:        OpTagImage,
		Description: "Tag a local image into a repository.",
		Kind:        KindSimple,
		Params: []Param{
			{Name: "image_reference", Type: TypeString, Required: true, Description: "Existing image ID or reference"},
			{Name: "repository", Type: TypeString, Required: true, Description: "Target repository"},
			{Name: "tag", Type: TypeString, Default: "latest", Description: "Target tag"},
		},
	},
	{
		Name:        OpPushImage,
		Description: "Push an image to a registry.",
		Kind:        KindBounded,
		Params: []Param{
			{Name: "repository", Type: TypeString, Required: true, Description: "Repository to push to"},
			{Name: "tag", Type: TypeString, Default: "latest", Description: "Tag to push"},
			{Name: "auth_config", Type: TypeStringMap, Description: "Registry credentials: username, password, serveraddress"},
		},
	},
	{
		Name:        OpBuildImage,
		Description: "Build an image from a build context directory and return the ordered build log.",
		Kind:        KindBounded,
		Params: []Param{
			{Name: "path", Type: TypeString, Required: true, Description: "Build context directory"},
			{Name: "tag", Type: TypeString, Description: "Tag for the built image"},
			{Name: "dockerfile", Type: TypeString, Description: "Dockerfile path relative to the context"},
			{Name: "build_args", Type: TypeStringMap, Description: "Build-time variables"},
			{Name: "labels", Type: TypeStringMap, Description: "Labels to set on the image"},
			{Name: "pull", Type: TypeBool, Default: false, Description: "Always attempt to pull newer base images"},
			{Name: "no_cache", Type: TypeBool, Default: false, Description: "Do not use the build cache"},
			{Name: "rm", Type: TypeBool, Default: true, Description: "Remove intermediate containers after the build"},
			{Name: "timeout", Type: TypeInt, Description: "Build deadline in seconds (default 3600)"},
		},
	},
	{
		Name:        OpListNetworks,
		Description: "List all networks.",
		Kind:        KindSimple,
	},
	{
		Name:        OpListVolumes,
		Description: "List all volumes.",
		Kind:        KindSimple,
	},
	{
		Name:        OpScanImage,
		Description: "Scan an image for known vulnerabilities using Docker Scout.",
		Kind:        KindBounded,
		Params: []Param{
			{Name: "image_reference", Type: TypeString, Required: true, Description: "Image reference (name:tag or digest)"},
		},
	},
	{
		Name:        OpImageRecommendations,
		Description: "Get base image update and remediation recommendations from Docker Scout.",
		Kind:        KindBounded,
		Params: []Param{
			{Name: "image_reference", Type: TypeString, Required: true, Description: "Image reference (name:tag or digest)"},
		},
	},
}

// Descriptors returns the registered operation table in registration
// order.
func Descriptors() []Descriptor {
	return descriptors
}
