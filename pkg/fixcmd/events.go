package fixcmd

type (
	// Sent once the project files have been found.
	EventSetTotal int

	// Sent when a project file session starts.
	EventFixing string

	// Sent when a project file has been saved, or when its session fails.
	EventFixed struct {
		Err         error
		Path        string
		LangVersion string
	}

	// Sent when all work has completed.
	EventDone struct {
		Err error
	}
)
