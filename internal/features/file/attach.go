package file

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
)

// Attachments is the "has files" capability for an owning entity,
// referenced polymorphically by (type tag, id). It only reads and issues
// scoped record updates; blob bytes are written exclusively by the service.
type Attachments struct {
	svc       *FileServiceImpl
	ownerType string
	ownerID   string
}

// Files returns every file of the owner ordered by display order
func (a *Attachments) Files(ctx context.Context) ([]*File, error) {
	return a.svc.Repo.FindByOwner(ctx, a.ownerType, a.ownerID)
}

// InCollection returns the owner's files in one collection, ordered
func (a *Attachments) InCollection(ctx context.Context, collection string) ([]*File, error) {
	return a.svc.Repo.FindByOwnerAndCollection(ctx, a.ownerType, a.ownerID, collection)
}

// First returns the first file of a collection, or nil when it is empty
func (a *Attachments) First(ctx context.Context, collection string) (*File, error) {
	files, err := a.InCollection(ctx, collection)
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, nil
	}
	return files[0], nil
}

// URL resolves the first file of a collection to a URL, or "" when the
// collection is empty
func (a *Attachments) URL(ctx context.Context, collection, size string) (string, error) {
	f, err := a.First(ctx, collection)
	if err != nil || f == nil {
		return "", err
	}
	return a.svc.URL(f, size)
}

// Sync makes fileIDs the authoritative membership of the collection:
// currently-attached records not in the list are deleted (blobs included),
// listed records are reassigned into the owner's collection. A replace
// operation, not an additive one.
func (a *Attachments) Sync(ctx context.Context, fileIDs []string, collection string) error {
	current, err := a.InCollection(ctx, collection)
	if err != nil {
		return err
	}

	keep := make(map[string]bool, len(fileIDs))
	for _, id := range fileIDs {
		keep[id] = true
	}

	for _, f := range current {
		if !keep[f.ID.Hex()] {
			if err := a.svc.Delete(ctx, f); err != nil {
				return err
			}
		}
	}

	return a.svc.Repo.SetOwnerAndCollection(ctx, fileIDs, a.ownerType, a.ownerID, collection)
}

// Reorder applies id→order assignments within a collection. Ids missing
// from the map keep their current order; partial reorders are legal.
func (a *Attachments) Reorder(ctx context.Context, collection string, order map[string]int) error {
	files, err := a.InCollection(ctx, collection)
	if err != nil {
		return err
	}

	for _, f := range files {
		newOrder, ok := order[f.ID.Hex()]
		if !ok || newOrder == f.Order {
			continue
		}
		if _, err := a.svc.Repo.Update(ctx, f.ID.Hex(), bson.M{"order": newOrder}); err != nil {
			return err
		}
	}
	return nil
}

// DeleteAll deletes every file in the collection, or all of the owner's
// files when collection is "". Best-effort: every deletion is attempted and
// the boolean reports whether all of them succeeded.
func (a *Attachments) DeleteAll(ctx context.Context, collection string) (bool, error) {
	var files []*File
	var err error
	if collection == "" {
		files, err = a.Files(ctx)
	} else {
		files, err = a.InCollection(ctx, collection)
	}
	if err != nil {
		return false, err
	}

	ok := true
	var errs []error
	for _, f := range files {
		if err := a.svc.Delete(ctx, f); err != nil {
			ok = false
			errs = append(errs, err)
		}
	}
	return ok, errors.Join(errs...)
}
