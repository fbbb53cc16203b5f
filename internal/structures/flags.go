package structures

type CliFlags struct {
	ConfigPath string
	EnvPath    string
	DebugMode  bool
}
