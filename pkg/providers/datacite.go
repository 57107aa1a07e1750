package providers

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/hashicorp/go-hclog"
	"gorm.io/gorm"

	"github.com/inveniosoftware/invenio-pidstore/pkg/datacite"
	"github.com/inveniosoftware/invenio-pidstore/pkg/models"
)

// DOIType is the pid type minted by the DataCite provider.
const DOIType = "doi"

// DataCiteProviderName is the provider tag recorded on DataCite PIDs.
const DataCiteProviderName = "datacite"

// DataCiteProvider registers DOIs with the DataCite MDS API. Every
// lifecycle operation runs the local status transition and the remote call
// inside one nested transaction, so a failed remote call never advances
// local status. Remote failures propagate to the caller un-recovered;
// retry and timeout policy is the caller's concern.
type DataCiteProvider struct {
	Base
	client datacite.Client
	log    hclog.Logger
}

func dataCiteSettings() Settings {
	provider := DataCiteProviderName
	return Settings{
		PIDType:       DOIType,
		PIDProvider:   &provider,
		DefaultStatus: models.StatusNew,
	}
}

// CreateDOI creates a new DOI persistent identifier managed by DataCite.
// The DOI value is chosen by the caller (typically prefix/suffix); nothing
// is sent to DataCite until Reserve or Register.
func CreateDOI(db *gorm.DB, client datacite.Client, log hclog.Logger, pidValue string, objectType *string, objectUUID *uuid.UUID) (*DataCiteProvider, error) {
	base, err := Create(db, dataCiteSettings(), CreateOptions{
		PIDValue:   pidValue,
		ObjectType: objectType,
		ObjectUUID: objectUUID,
	})
	if err != nil {
		return nil, err
	}
	return newDataCiteProvider(base, client, log), nil
}

// GetDOI wraps an existing DataCite-managed DOI.
func GetDOI(db *gorm.DB, client datacite.Client, log hclog.Logger, pidValue string) (*DataCiteProvider, error) {
	base, err := Get(db, dataCiteSettings(), pidValue)
	if err != nil {
		return nil, err
	}
	return newDataCiteProvider(base, client, log), nil
}

func newDataCiteProvider(base *Base, client datacite.Client, log hclog.Logger) *DataCiteProvider {
	if log == nil {
		log = hclog.NewNullLogger()
	}
	return &DataCiteProvider{Base: *base, client: client, log: log}
}

// Reserve uploads metadata for the DOI without minting it and marks the
// PID reserved.
func (p *DataCiteProvider) Reserve(ctx context.Context, db *gorm.DB, doc string) error {
	// A rollback reverts the row but not the struct, so snapshot the PID
	// and put it back if anything inside the transaction fails.
	prev := *p.pid
	err := db.Transaction(func(tx *gorm.DB) error {
		if err := p.pid.Reserve(tx); err != nil {
			return err
		}
		return p.client.MetadataPost(ctx, doc)
	})
	if err != nil {
		*p.pid = prev
		p.log.Error("failed to reserve DOI in DataCite",
			"pid", p.pid.String(), "error", err)
		return err
	}
	p.log.Info("reserved DOI in DataCite", "pid", p.pid.String())
	return nil
}

// Register uploads metadata, mints the DOI against the given location URL
// and marks the PID registered.
func (p *DataCiteProvider) Register(ctx context.Context, db *gorm.DB, location, doc string) error {
	prev := *p.pid
	err := db.Transaction(func(tx *gorm.DB) error {
		if err := p.pid.Register(tx); err != nil {
			return err
		}
		if err := p.client.MetadataPost(ctx, doc); err != nil {
			return err
		}
		return p.client.DOIPost(ctx, p.pid.PIDValue, location)
	})
	if err != nil {
		*p.pid = prev
		p.log.Error("failed to register DOI in DataCite",
			"pid", p.pid.String(), "error", err)
		return err
	}
	p.log.Info("registered DOI in DataCite", "pid", p.pid.String())
	return nil
}

// Update refreshes the metadata and location of a DOI. Updating a
// previously deleted PID reactivates it back to REGISTERED.
func (p *DataCiteProvider) Update(ctx context.Context, db *gorm.DB, location, doc string) error {
	reactivate := p.pid.IsDeleted()
	if reactivate {
		p.log.Info("reactivating DOI in DataCite", "pid", p.pid.String())
	}

	if err := p.client.MetadataPost(ctx, doc); err != nil {
		p.log.Error("failed to update DOI in DataCite",
			"pid", p.pid.String(), "error", err)
		return err
	}
	if err := p.client.DOIPost(ctx, p.pid.PIDValue, location); err != nil {
		p.log.Error("failed to update DOI in DataCite",
			"pid", p.pid.String(), "error", err)
		return err
	}

	if reactivate {
		if err := p.pid.SyncStatus(db, models.StatusRegistered); err != nil {
			return err
		}
	}
	p.log.Info("updated DOI in DataCite", "pid", p.pid.String())
	return nil
}

// Delete tombstones the PID locally and, unless it was still NEW (never
// sent to DataCite), also withdraws it from the external authority.
func (p *DataCiteProvider) Delete(ctx context.Context, db *gorm.DB) error {
	wasNew := p.pid.IsNew()
	prev := *p.pid
	err := db.Transaction(func(tx *gorm.DB) error {
		if err := p.pid.Delete(tx); err != nil {
			return err
		}
		if wasNew {
			return nil
		}
		return p.client.MetadataDelete(ctx, p.pid.PIDValue)
	})
	if err != nil {
		*p.pid = prev
		p.log.Error("failed to delete DOI in DataCite",
			"pid", p.pid.String(), "error", err)
		return err
	}
	p.log.Info("deleted DOI in DataCite", "pid", p.pid.String())
	return nil
}

// SyncStatus polls DataCite and reconciles local status with the remote
// truth: a resolvable DOI is REGISTERED, uploaded-but-unminted metadata is
// RESERVED, a withdrawn DOI is DELETED, and a DOI DataCite has never seen
// falls back to NEW.
func (p *DataCiteProvider) SyncStatus(ctx context.Context, db *gorm.DB) error {
	status, err := p.probeRemoteStatus(ctx)
	if err != nil {
		p.log.Error("failed to sync DOI status from DataCite",
			"pid", p.pid.String(), "error", err)
		return err
	}

	if err := p.pid.SyncStatus(db, status); err != nil {
		return err
	}
	p.log.Info("synced DOI status from DataCite",
		"pid", p.pid.String(), "status", status.String())
	return nil
}

func (p *DataCiteProvider) probeRemoteStatus(ctx context.Context) (models.PIDStatus, error) {
	// Primary probe: does the DOI resolve?
	_, err := p.client.DOIGet(ctx, p.pid.PIDValue)
	switch {
	case err == nil:
		return models.StatusRegistered, nil
	case errors.Is(err, datacite.ErrNoContent):
		return models.StatusRegistered, nil
	case errors.Is(err, datacite.ErrGone):
		return models.StatusDeleted, nil
	case errors.Is(err, datacite.ErrNotFound):
		// Fall through to the metadata probe.
	default:
		return "", err
	}

	// Secondary probe: was metadata uploaded without minting?
	_, err = p.client.MetadataGet(ctx, p.pid.PIDValue)
	switch {
	case err == nil:
		return models.StatusReserved, nil
	case errors.Is(err, datacite.ErrNoContent):
		return models.StatusRegistered, nil
	case errors.Is(err, datacite.ErrGone):
		return models.StatusDeleted, nil
	case errors.Is(err, datacite.ErrNotFound):
		return models.StatusNew, nil
	default:
		return "", err
	}
}
