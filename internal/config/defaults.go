package config

const (
	defaultVideoDir          = "~/.local/share/subweave/videos"
	defaultAudioDir          = "~/.local/share/subweave/audios"
	defaultTranscriptDir     = "~/.local/share/subweave/transcripts"
	defaultLogDir            = "~/.local/share/subweave/logs"
	defaultGlossaryPath      = "~/.local/share/subweave/glossary.json"
	defaultRunLogPath        = "~/.local/share/subweave/runs.db"
	defaultWhisperBinary     = "whisper"
	defaultWhisperModel      = "base"
	defaultWhisperTimeout    = 3600
	defaultTranslateBaseURL  = "https://translate.googleapis.com/translate_a/single"
	defaultTranslateTimeout  = 15
	defaultAIProvider        = "gpt"
	defaultAITimeoutSeconds  = 60
	defaultLogFormat         = "console"
	defaultLogLevel          = "info"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			VideoDir:      defaultVideoDir,
			AudioDir:      defaultAudioDir,
			TranscriptDir: defaultTranscriptDir,
			LogDir:        defaultLogDir,
			GlossaryPath:  defaultGlossaryPath,
			RunLogPath:    defaultRunLogPath,
		},
		Whisper: Whisper{
			Binary:         defaultWhisperBinary,
			Model:          defaultWhisperModel,
			TimeoutSeconds: defaultWhisperTimeout,
		},
		Translate: Translate{
			BaseURL:        defaultTranslateBaseURL,
			TimeoutSeconds: defaultTranslateTimeout,
		},
		AI: AI{
			Provider:        defaultAIProvider,
			EnableExpansion: true,
			TimeoutSeconds:  defaultAITimeoutSeconds,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
