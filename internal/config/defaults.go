package config

const (
	defaultStateDir              = "~/.local/state/musiclink"
	defaultProbeBackend          = ProbeBackendFFprobe
	defaultFFprobeBinary         = "ffprobe"
	defaultProbeTimeoutSeconds   = 30
	defaultProbeOnFailure        = OnFailureSkip
	defaultUnknownArtist         = "Unidentified Artist"
	defaultCrossDevice           = CrossDeviceFail
	defaultProgress              = ProgressAuto
	defaultDuplicateWarningLimit = 10
	defaultLedgerFile            = "ledger.db"
	defaultLogFormat             = "console"
	defaultLogLevel              = "info"
	defaultLogRetentionDays      = 30
)

// defaultExtensions lists the audio extensions picked up by discovery.
var defaultExtensions = []string{".mp3", ".wav", ".flac", ".m4a"}

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			StateDir: defaultStateDir,
		},
		Probe: Probe{
			Backend:        defaultProbeBackend,
			FFprobeBinary:  defaultFFprobeBinary,
			TimeoutSeconds: defaultProbeTimeoutSeconds,
			OnFailure:      defaultProbeOnFailure,
		},
		Library: Library{
			Extensions:    append([]string(nil), defaultExtensions...),
			UnknownArtist: defaultUnknownArtist,
			CrossDevice:   defaultCrossDevice,
		},
		Output: Output{
			Progress:              defaultProgress,
			DuplicateWarningLimit: defaultDuplicateWarningLimit,
		},
		Logging: Logging{
			Format:        defaultLogFormat,
			Level:         defaultLogLevel,
			RunLogs:       true,
			RetentionDays: defaultLogRetentionDays,
		},
	}
}
