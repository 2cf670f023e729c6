// Package config provides layered configuration for tagsmith using koanf.
// Values are loaded with priority: CLI flags > INPUT_* environment variables
// (CI action inputs) > --env-file > project config (.tagsmith.yml) > defaults.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/tagsmith/tagsmith/internal/policy"
)

// InputPrefix is the environment prefix CI runners use for action inputs.
const InputPrefix = "INPUT_"

// TokenEnv is read for the push/pull token when github_token is not set.
const TokenEnv = "GITHUB_TOKEN"

// Configuration represents the tagsmith release configuration.
type Configuration struct {
	// GitMessage is the release commit message; {version} is replaced by the tag.
	GitMessage    string `koanf:"git_message" validate:"required"`
	GitUserName   string `koanf:"git_user_name" validate:"required"`
	GitUserEmail  string `koanf:"git_user_email" validate:"required"`
	GitPullMethod string `koanf:"git_pull_method" validate:"oneof=ff-only none"`
	// GitBranch is the branch to pull and push; empty uses the checked out branch.
	GitBranch   string `koanf:"git_branch"`
	GitPush     bool   `koanf:"git_push"`
	GitRemote   string `koanf:"git_remote" validate:"required"`
	GitHubToken string `koanf:"github_token"`

	TagPrefix string `koanf:"tag_prefix"`
	// VersionFile is a literal X.Y.Z version or a comma-separated file list.
	VersionFile string `koanf:"version_file"`
	VersionPath string `koanf:"version_path" validate:"required"`

	StripCommitPrefix         bool   `koanf:"strip_commit_prefix"`
	MajorReleaseCommitMessage string `koanf:"major_release_commit_message" validate:"required"`
	IncludeCommitTypes        string `koanf:"include_commit_types"`
	MinorCommitTypes          string `koanf:"minor_commit_types"`
	PatchCommitTypes          string `koanf:"patch_commit_types"`
	MinorBumpInterval         int    `koanf:"minor_bump_interval" validate:"min=1"`
	PatchBumpInterval         int    `koanf:"patch_bump_interval" validate:"min=1"`

	// OutputFile is the changelog file to prepend to; "false" disables it.
	OutputFile      string `koanf:"output_file"`
	ReleaseCount    int    `koanf:"release_count" validate:"min=0"`
	SkipOnEmpty     bool   `koanf:"skip_on_empty"`
	SkipCommit      bool   `koanf:"skip_commit"`
	SkipTag         bool   `koanf:"skip_tag"`
	SkipVersionFile bool   `koanf:"skip_version_file"`
	DryRun          bool   `koanf:"dry_run"`

	// Labels holds the <type>_label overrides keyed by commit type.
	Labels map[string]string `koanf:"-"`
}

// LoadOptions configures how configuration is loaded
type LoadOptions struct {
	// Dir is where the project config is looked up (default: current directory).
	Dir string
	// ConfigPath overrides the project config path (default: .tagsmith.yml in Dir).
	// An explicit path must exist.
	ConfigPath string
	// EnvFile is a dotenv file holding INPUT_* variables for local runs.
	EnvFile string
	// Overrides are applied last, typically from explicitly set CLI flags.
	Overrides map[string]any
}

// Load loads configuration from the project file and environment.
func Load(configPath string) (*Configuration, error) {
	return LoadWithOptions(LoadOptions{ConfigPath: configPath})
}

// LoadWithOptions loads configuration with custom options
func LoadWithOptions(opts LoadOptions) (*Configuration, error) {
	k := koanf.New(".")

	loadDefaults(k)

	if err := loadProjectConfig(k, opts.Dir, opts.ConfigPath); err != nil {
		return nil, err
	}

	if err := loadEnvFile(k, opts.EnvFile); err != nil {
		return nil, err
	}

	if err := loadEnvironmentConfig(k); err != nil {
		return nil, err
	}

	for key, value := range opts.Overrides {
		k.Set(key, value)
	}

	return finalizeConfig(k)
}

// loadDefaults applies default configuration values
func loadDefaults(k *koanf.Koanf) {
	for key, value := range GetDefaults() {
		k.Set(key, value)
	}
}

// loadProjectConfig loads the YAML project config. The default path may be
// absent; an explicitly requested one may not.
func loadProjectConfig(k *koanf.Koanf, dir, customPath string) error {
	path := filepath.Join(dir, ProjectConfigFile)
	if customPath != "" {
		path = customPath
		if !fileExists(path) {
			return &ValidationError{FilePath: path, Message: "config file not found"}
		}
	}
	if !fileExists(path) {
		return nil
	}

	if err := ValidateYAMLSyntax(path); err != nil {
		return err
	}
	if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
		return fmt.Errorf("failed to load project config %s: %w", path, err)
	}
	return nil
}

// loadEnvFile applies INPUT_* and token entries from a dotenv file without
// touching the process environment.
func loadEnvFile(k *koanf.Koanf, path string) error {
	if path == "" {
		return nil
	}
	values, err := godotenv.Read(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return &ValidationError{FilePath: path, Message: "env file not found"}
		}
		return &ValidationError{FilePath: path, Message: err.Error()}
	}
	for name, value := range values {
		if key := envTransform(name); key != "" && value != "" {
			k.Set(key, value)
		}
	}
	return nil
}

// loadEnvironmentConfig loads INPUT_* variables and the token variable.
// Empty inputs are ignored so they do not override lower layers.
func loadEnvironmentConfig(k *koanf.Koanf) error {
	inputs := env.ProviderWithValue(InputPrefix, ".", func(name, value string) (string, any) {
		if value == "" {
			return "", nil
		}
		return envTransform(name), value
	})
	if err := k.Load(inputs, nil); err != nil {
		return fmt.Errorf("failed to load environment config: %w", err)
	}
	if !k.Exists("github_token") || k.String("github_token") == "" {
		if err := k.Load(env.Provider(TokenEnv, ".", envTransform), nil); err != nil {
			return fmt.Errorf("failed to load token from environment: %w", err)
		}
	}
	return nil
}

// finalizeConfig unmarshals, validates, and applies final transformations
func finalizeConfig(k *koanf.Koanf) (*Configuration, error) {
	// YAML reads "output_file: false" as a bool.
	if b, ok := k.Get("output_file").(bool); ok && !b {
		k.Set("output_file", OutputDisabled)
	}

	var cfg Configuration
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	cfg.Labels = make(map[string]string)
	for _, t := range policy.CanonicalTypes() {
		if label := k.String(t + "_label"); label != "" {
			cfg.Labels[t] = label
		}
	}

	if err := ValidateConfigValues(&cfg, "config"); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// fileExists returns true if the file exists and is readable
func fileExists(path string) bool {
	if path == "" {
		return false
	}
	_, err := os.Stat(path)
	return err == nil
}

// envTransform converts environment variable names to config keys.
// Example: INPUT_TAG_PREFIX -> tag_prefix, INPUT_TAG-PREFIX -> tag_prefix.
// Names that are neither inputs nor the token variable map to "" and are skipped.
func envTransform(s string) string {
	switch {
	case s == TokenEnv:
		return "github_token"
	case strings.HasPrefix(s, InputPrefix):
		key := strings.ToLower(strings.TrimPrefix(s, InputPrefix))
		return strings.ReplaceAll(key, "-", "_")
	default:
		return ""
	}
}
