// Package fetchers re-derives a previously minted persistent identifier's
// identifying information from an object's metadata, without touching
// storage. A fetcher is the read-side dual of a minter: for the same
// logical identifier the two must agree on the pid value.
package fetchers

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/inveniosoftware/invenio-pidstore/pkg/providers"
)

// FetchedPID identifies a minted persistent identifier: which provider
// manages it, its type and its value.
type FetchedPID struct {
	Provider string
	PIDType  string
	PIDValue string
}

// Fetcher derives a FetchedPID from an object's metadata.
type Fetcher func(objectUUID uuid.UUID, data map[string]interface{}) (FetchedPID, error)

// DefaultPIDField is the metadata field record minters store the pid value
// under.
const DefaultPIDField = "control_number"

// NewRecordIDFetcher returns a fetcher reading the legacy sequential
// record identifier from the given metadata field.
func NewRecordIDFetcher(pidField string) Fetcher {
	return newRecordFetcher("recid", pidField)
}

// NewRecordIDFetcherV2 returns a fetcher reading the random base32 record
// identifier from the given metadata field.
func NewRecordIDFetcherV2(pidField string) Fetcher {
	return newRecordFetcher("recid_v2", pidField)
}

func newRecordFetcher(provider, pidField string) Fetcher {
	if pidField == "" {
		pidField = DefaultPIDField
	}
	return func(objectUUID uuid.UUID, data map[string]interface{}) (FetchedPID, error) {
		raw, ok := data[pidField]
		if !ok {
			return FetchedPID{}, fmt.Errorf("metadata field %q is not set", pidField)
		}
		return FetchedPID{
			Provider: provider,
			PIDType:  providers.RecordIDType,
			PIDValue: fmt.Sprintf("%v", raw),
		}, nil
	}
}
