package project

import (
	"github.com/wagatoken/wagachain"
	"github.com/wagatoken/wagachain/errors"
)

// Controller is the project tracker seam consumed by the grant extension.
type Controller interface {
	// CreateProject registers a new project for the given grant and
	// returns its id.
	CreateProject(db wagachain.KVStore, grantID []byte, metadataRef string, projectedYield int64) ([]byte, error)

	// AdvanceStage bumps the project stage by one, recording the
	// evidence reference. The delivered flag marks the final stage.
	AdvanceStage(db wagachain.KVStore, projectID []byte, evidenceRef string, delivered bool) error
}

// ProjectController is the bucket backed Controller implementation.
type ProjectController struct {
	bucket ProjectBucket
}

var _ Controller = ProjectController{}

// NewController returns a controller over the given bucket.
func NewController(bucket ProjectBucket) ProjectController {
	return ProjectController{bucket: bucket}
}

func (c ProjectController) CreateProject(db wagachain.KVStore, grantID []byte, metadataRef string, projectedYield int64) ([]byte, error) {
	p := &Project{
		Metadata:       &wagachain.Metadata{Schema: 1},
		GrantID:        grantID,
		MetadataRef:    metadataRef,
		ProjectedYield: projectedYield,
	}
	key, err := c.bucket.Put(db, nil, p)
	if err != nil {
		return nil, errors.Wrap(err, "save project")
	}
	return key, nil
}

func (c ProjectController) AdvanceStage(db wagachain.KVStore, projectID []byte, evidenceRef string, delivered bool) error {
	var p Project
	if err := c.bucket.One(db, projectID, &p); err != nil {
		return errors.Wrap(err, "load project")
	}
	if p.Delivered {
		return errors.Wrap(errors.ErrState, "project already delivered")
	}
	p.Stage++
	p.EvidenceRef = evidenceRef
	p.Delivered = delivered
	if _, err := c.bucket.Put(db, projectID, &p); err != nil {
		return errors.Wrap(err, "save project")
	}
	return nil
}
