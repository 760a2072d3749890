// Package config defines the formatting options and their TOML
// persistence: defaults, loading, saving and version migration.
package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// Version is stamped into config files. Files written by an older version
// keep their recognized settings and are rewritten on load.
const Version = "1.0"

// FilePrefix namespaces the files asmfix creates next to the source.
const FilePrefix = "asmf-"

const (
	// DefaultConfigFile is used when no config path is given.
	DefaultConfigFile = FilePrefix + "config.toml"
	// DefaultBackupFile is used when safe mode is on and no backup path is given.
	DefaultBackupFile = FilePrefix + "backup.asm"
)

// Config is the flat set of formatting options, immutable for the duration
// of one run.
type Config struct {
	ConfigVersion string `toml:"config_version"`

	FixIndents bool `toml:"fix_indents"`
	TabSize    int  `toml:"tab_size"`

	FixFileWidth            bool `toml:"fix_file_width"`
	FileWidth               int  `toml:"file_width"`
	LongCommentIndentAmount int  `toml:"long_comment_indent_amount"`

	FixCapitalization bool `toml:"fix_capitalization"`
	FixBlankLines     bool `toml:"fix_blank_lines"`

	AlignComments               bool `toml:"align_comments"`
	AlignDataComments           bool `toml:"align_data_comments"`
	AlignDataCommentsSeparately bool `toml:"align_data_comments_separately"`
	MinCommentSpacing           int  `toml:"min_comment_spacing"`

	AlignCodeSection             bool `toml:"align_code_section"`
	MinInstructionOperandSpacing int  `toml:"min_instruction_operand_spacing"`
	AddSpacesBetweenOperands     bool `toml:"add_spaces_between_operands"`

	AlignDataSection              bool `toml:"align_data_section"`
	AlignCodeAndDataTogether      bool `toml:"align_code_and_data_together"`
	MinDataDirectiveSpacing       int  `toml:"min_data_directive_spacing"`
	MinDataInitialValueSpacing    int  `toml:"min_data_initial_value_spacing"`
	AddSpacesBetweenInitialValues bool `toml:"add_spaces_between_initial_values"`

	AlignHeaderComments bool `toml:"align_header_comments"`
}

// Default returns the stock configuration.
func Default() Config {
	return Config{
		ConfigVersion: Version,

		FixIndents: true,
		TabSize:    2,

		FixFileWidth:            true,
		FileWidth:               80,
		LongCommentIndentAmount: 2,

		FixCapitalization: true,
		FixBlankLines:     true,

		AlignComments:               true,
		AlignDataComments:           true,
		AlignDataCommentsSeparately: true,
		MinCommentSpacing:           3,

		AlignCodeSection:             true,
		MinInstructionOperandSpacing: 3,
		AddSpacesBetweenOperands:     true,

		AlignDataSection:              true,
		AlignCodeAndDataTogether:      false,
		MinDataDirectiveSpacing:       2,
		MinDataInitialValueSpacing:    2,
		AddSpacesBetweenInitialValues: true,

		AlignHeaderComments: true,
	}
}

// Load reads the configuration at path, creating the file with defaults
// when it does not exist. Decoding happens over a default config, so
// unknown keys are ignored and missing keys keep their defaults; when the
// stored version differs from Version the file is rewritten and migrated
// reports it so the caller can warn.
func Load(path string) (cfg Config, migrated bool, err error) {
	if _, statErr := os.Stat(path); errors.Is(statErr, os.ErrNotExist) {
		cfg = Default()
		if err = Save(path, cfg); err != nil {
			return Config{}, false, err
		}
		return cfg, false, nil
	}

	cfg = Default()
	if _, err = toml.DecodeFile(path, &cfg); err != nil {
		return Config{}, false, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if cfg.ConfigVersion != Version {
		cfg.ConfigVersion = Version
		if err = Save(path, cfg); err != nil {
			return Config{}, false, err
		}
		return cfg, true, nil
	}
	return cfg, false, nil
}

// Save writes cfg to path as TOML.
func Save(path string, cfg Config) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("%s: failed to create config: %w", path, err)
	}
	if err := toml.NewEncoder(file).Encode(cfg); err != nil {
		file.Close()
		return fmt.Errorf("%s: failed to encode config: %w", path, err)
	}
	return file.Close()
}
