package config

const (
	EnvConfigPath        = "CHRONICLER_CONFIG"
	EnvArchiveDir        = "CHRONICLER_ARCHIVE_DIR"
	EnvLogLevel          = "CHRONICLER_LOG_LEVEL"
	EnvS3AccessKeyID     = "AWS_ACCESS_KEY_ID"
	EnvS3SecretAccessKey = "AWS_SECRET_ACCESS_KEY"
	EnvS3Endpoint        = "CHRONICLER_S3_ENDPOINT"

	DefaultConfigPath = "config.yaml"
)
