package providers

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/mitchellh/mapstructure"
	"gorm.io/gorm"

	"github.com/inveniosoftware/invenio-pidstore/pkg/base32"
	"github.com/inveniosoftware/invenio-pidstore/pkg/models"
)

// GeneratorOptions controls record id generation for RecordIDProviderV2.
// All fields are pointers so that an explicit zero value is distinguishable
// from an unset one; nil falls back to the process-wide default.
type GeneratorOptions struct {
	// Length is the total identifier length, checksum included.
	Length *int `mapstructure:"length"`

	// SplitEvery inserts a hyphen every n characters; 0 disables
	// grouping.
	SplitEvery *int `mapstructure:"split_every"`

	// Checksum appends two ISO 7064 mod 97-10 check digits.
	Checksum *bool `mapstructure:"checksum"`
}

// defaultGeneratorOptions are the process-wide generation defaults,
// overridable once at startup via SetDefaultGeneratorOptions.
var defaultGeneratorOptions = GeneratorOptions{
	Length:     intPtr(10),
	SplitEvery: intPtr(0),
	Checksum:   boolPtr(true),
}

// SetDefaultGeneratorOptions replaces the process-wide generation
// defaults. Call once during initialization, before minting starts.
func SetDefaultGeneratorOptions(opts GeneratorOptions) {
	merged := opts.withDefaults(defaultGeneratorOptions)
	defaultGeneratorOptions = merged
}

// DecodeGeneratorOptions decodes a caller-supplied option map with keys
// "length", "split_every" and "checksum" into GeneratorOptions. Unknown
// keys are rejected.
func DecodeGeneratorOptions(m map[string]interface{}) (GeneratorOptions, error) {
	var opts GeneratorOptions
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:      &opts,
		ErrorUnused: true,
	})
	if err != nil {
		return opts, err
	}
	if err := dec.Decode(m); err != nil {
		return opts, fmt.Errorf("invalid generator options: %w", err)
	}
	return opts, nil
}

func (o GeneratorOptions) withDefaults(defaults GeneratorOptions) GeneratorOptions {
	if o.Length == nil {
		o.Length = defaults.Length
	}
	if o.SplitEvery == nil {
		o.SplitEvery = defaults.SplitEvery
	}
	if o.Checksum == nil {
		o.Checksum = defaults.Checksum
	}
	return o
}

func boolPtr(v bool) *bool { return &v }

func intPtr(v int) *int { return &v }

// RecordIDProviderV2 mints random alphanumeric record identifiers. This is
// the recommended record id provider: unlike the sequential one, the
// generated values leak no information about registry size or ordering.
type RecordIDProviderV2 struct {
	Base
}

func recordIDV2Settings() Settings {
	return Settings{
		PIDType:       RecordIDType,
		DefaultStatus: models.StatusReserved,
	}
}

// GenerateRecordIDV2 generates a record id value using opts merged over
// the process-wide defaults.
func GenerateRecordIDV2(opts GeneratorOptions) (string, error) {
	merged := opts.withDefaults(defaultGeneratorOptions)
	return base32.Generate(*merged.Length, *merged.SplitEvery, *merged.Checksum)
}

// CreateRecordIDV2 mints a random base32 record identifier. PIDs created
// bare are RESERVED; PIDs created with an object attached go straight to
// REGISTERED. opts override the process-wide generation defaults per call.
func CreateRecordIDV2(db *gorm.DB, objectType *string, objectUUID *uuid.UUID, opts GeneratorOptions) (*RecordIDProviderV2, error) {
	value, err := GenerateRecordIDV2(opts)
	if err != nil {
		return nil, err
	}

	createOpts := CreateOptions{
		PIDValue:   value,
		ObjectType: objectType,
		ObjectUUID: objectUUID,
	}
	if objectType != nil && objectUUID != nil {
		createOpts.Status = models.StatusRegistered
	}

	base, err := Create(db, recordIDV2Settings(), createOpts)
	if err != nil {
		return nil, err
	}
	return &RecordIDProviderV2{Base: *base}, nil
}

// GetRecordIDV2 wraps an existing record identifier.
func GetRecordIDV2(db *gorm.DB, pidValue string) (*RecordIDProviderV2, error) {
	base, err := Get(db, recordIDV2Settings(), pidValue)
	if err != nil {
		return nil, err
	}
	return &RecordIDProviderV2{Base: *base}, nil
}
