package layer

// Standard priority levels for settings layers.
const (
	PriorityBuiltin = 0
	PriorityUser    = 100
	PriorityProject = 200
	PriorityEnv     = 500
	PriorityArgs    = 600
)

// DefaultPriority returns the default priority for a given source.
func DefaultPriority(source Source) int {
	switch source {
	case SourceUser:
		return PriorityUser
	case SourceProject:
		return PriorityProject
	case SourceEnv:
		return PriorityEnv
	case SourceArgs:
		return PriorityArgs
	default:
		return PriorityBuiltin
	}
}

var standardLayerNames = map[Source]string{
	SourceBuiltin: "defaults",
	SourceUser:    "user",
	SourceProject: "project",
	SourceEnv:     "environment",
	SourceArgs:    "arguments",
}

// StandardLayerName returns the standard name for a source.
func StandardLayerName(source Source) string {
	if name, ok := standardLayerNames[source]; ok {
		return name
	}
	return "unknown"
}
