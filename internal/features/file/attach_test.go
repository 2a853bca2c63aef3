package file

import (
	"context"
	"errors"
	"sync"
	"testing"
)

func uploadOwned(t *testing.T, svc *FileServiceImpl, ownerType, ownerID, collection, name string) *File {
	t.Helper()
	opts := DefaultUploadOptions()
	opts.OwnerType = ownerType
	opts.OwnerID = ownerID
	opts.Collection = collection

	f, err := svc.Upload(context.Background(), &Upload{
		Filename:    name,
		ContentType: "text/plain",
		Data:        []byte("data-" + name),
	}, "uploads", opts)
	if err != nil {
		t.Fatalf("upload %s: %v", name, err)
	}
	return f
}

func TestAttachmentsOrdering(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()
	owner := svc.For("product", "42")

	a := uploadOwned(t, svc, "product", "42", "gallery", "a.txt")
	b := uploadOwned(t, svc, "product", "42", "gallery", "b.txt")
	c := uploadOwned(t, svc, "product", "42", "gallery", "c.txt")

	files, err := owner.InCollection(ctx, "gallery")
	if err != nil {
		t.Fatalf("in collection: %v", err)
	}
	if len(files) != 3 {
		t.Fatalf("got %d files, want 3", len(files))
	}
	for i, want := range []*File{a, b, c} {
		if files[i].ID != want.ID {
			t.Errorf("position %d: got %s, want %s", i, files[i].ID.Hex(), want.ID.Hex())
		}
		if files[i].Order != i {
			t.Errorf("position %d: order = %d", i, files[i].Order)
		}
	}

	// orders count per collection, not per owner
	d := uploadOwned(t, svc, "product", "42", "docs", "d.txt")
	if d.Order != 0 {
		t.Errorf("first file of a new collection should start at 0, got %d", d.Order)
	}
}

func TestAttachmentsFirstAndURLOnEmptyCollection(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()
	owner := svc.For("product", "42")

	f, err := owner.First(ctx, "gallery")
	if err != nil {
		t.Fatalf("first: %v", err)
	}
	if f != nil {
		t.Errorf("empty collection should yield nil, got %+v", f)
	}

	u, err := owner.URL(ctx, "gallery", "thumbnail")
	if err != nil {
		t.Fatalf("url: %v", err)
	}
	if u != "" {
		t.Errorf("empty collection should yield empty URL, got %q", u)
	}
}

func TestSyncReplacesCollection(t *testing.T) {
	svc, repo, disk := newTestService(t)
	ctx := context.Background()
	owner := svc.For("product", "42")

	a := uploadOwned(t, svc, "product", "42", "gallery", "a.txt")
	b := uploadOwned(t, svc, "product", "42", "gallery", "b.txt")
	c := uploadOwned(t, svc, "product", "42", "gallery", "c.txt")

	// d starts out unattached
	d, err := svc.Upload(ctx, &Upload{
		Filename:    "d.txt",
		ContentType: "text/plain",
		Data:        []byte("data-d"),
	}, "uploads", nil)
	if err != nil {
		t.Fatalf("upload d: %v", err)
	}

	if err := owner.Sync(ctx, []string{b.ID.Hex(), d.ID.Hex()}, "gallery"); err != nil {
		t.Fatalf("sync: %v", err)
	}

	files, err := owner.InCollection(ctx, "gallery")
	if err != nil {
		t.Fatalf("in collection: %v", err)
	}
	if len(files) != 2 {
		t.Fatalf("got %d files after sync, want 2", len(files))
	}

	got := map[string]*File{}
	for _, f := range files {
		got[f.ID.Hex()] = f
	}
	if got[b.ID.Hex()] == nil || got[d.ID.Hex()] == nil {
		t.Fatalf("collection = %v, want {b, d}", files)
	}

	// b was already in scope and keeps its order untouched
	if got[b.ID.Hex()].Order != b.Order {
		t.Errorf("b order changed: %d -> %d", b.Order, got[b.ID.Hex()].Order)
	}
	// d got appended at the tail
	if got[d.ID.Hex()].Order <= b.Order {
		t.Errorf("d order = %d, want > %d", got[d.ID.Hex()].Order, b.Order)
	}

	// a and c were dropped entirely: records and blobs
	for _, gone := range []*File{a, c} {
		if _, err := repo.Get(ctx, gone.ID.Hex()); !errors.Is(err, ErrNotFound) {
			t.Errorf("%s should be deleted, got %v", gone.OriginalName, err)
		}
		if disk.Exists(ctx, gone.Path) {
			t.Errorf("%s blob should be deleted", gone.OriginalName)
		}
	}
	if disk.Exists(ctx, b.Path) != true || disk.Exists(ctx, d.Path) != true {
		t.Error("kept blobs must survive the sync")
	}
}

func TestReorderIsPartial(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()
	owner := svc.For("product", "42")

	a := uploadOwned(t, svc, "product", "42", "gallery", "a.txt")
	b := uploadOwned(t, svc, "product", "42", "gallery", "b.txt")
	c := uploadOwned(t, svc, "product", "42", "gallery", "c.txt")

	// swap a and c, say nothing about b, include an unknown id
	err := owner.Reorder(ctx, "gallery", map[string]int{
		a.ID.Hex():                 2,
		c.ID.Hex():                 0,
		"0123456789abcdef01234567": 9,
	})
	if err != nil {
		t.Fatalf("reorder: %v", err)
	}

	files, err := owner.InCollection(ctx, "gallery")
	if err != nil {
		t.Fatalf("in collection: %v", err)
	}
	wantOrder := []*File{c, b, a}
	for i, want := range wantOrder {
		if files[i].ID != want.ID {
			t.Errorf("position %d: got %s, want %s", i, files[i].OriginalName, want.OriginalName)
		}
	}
	if files[1].Order != 1 {
		t.Errorf("untouched file order = %d, want 1", files[1].Order)
	}
}

// failDeleteRepo makes record deletion fail for one id, to exercise the
// best-effort aggregation of DeleteAll.
type failDeleteRepo struct {
	*memRepo
	failID string
}

func (r *failDeleteRepo) Delete(ctx context.Context, id string) error {
	if id == r.failID {
		return errors.New("write conflict")
	}
	return r.memRepo.Delete(ctx, id)
}

func TestDeleteAll(t *testing.T) {
	svc, repo, disk := newTestService(t)
	ctx := context.Background()
	owner := svc.For("product", "42")

	uploadOwned(t, svc, "product", "42", "gallery", "a.txt")
	uploadOwned(t, svc, "product", "42", "docs", "b.txt")
	keep := uploadOwned(t, svc, "product", "99", "gallery", "z.txt")

	ok, err := owner.DeleteAll(ctx, "")
	if err != nil || !ok {
		t.Fatalf("delete all: ok=%v err=%v", ok, err)
	}

	files, _ := owner.Files(ctx)
	if len(files) != 0 {
		t.Errorf("%d files remain", len(files))
	}
	// other owners are untouched
	if _, err := repo.Get(ctx, keep.ID.Hex()); err != nil {
		t.Errorf("other owner's file was deleted: %v", err)
	}
	if !disk.Exists(ctx, keep.Path) {
		t.Error("other owner's blob was deleted")
	}
}

func TestDeleteAllReportsPartialFailure(t *testing.T) {
	svc, repo, _ := newTestService(t)
	ctx := context.Background()
	owner := svc.For("product", "42")

	a := uploadOwned(t, svc, "product", "42", "gallery", "a.txt")
	b := uploadOwned(t, svc, "product", "42", "gallery", "b.txt")

	svc.Repo = &failDeleteRepo{memRepo: repo, failID: a.ID.Hex()}

	ok, err := owner.DeleteAll(ctx, "gallery")
	if ok {
		t.Error("ok should be false when a deletion fails")
	}
	if err == nil {
		t.Error("aggregate error expected")
	}

	// the other deletion still went through
	if _, err := repo.Get(ctx, b.ID.Hex()); !errors.Is(err, ErrNotFound) {
		t.Errorf("b should be deleted, got %v", err)
	}
	if _, err := repo.Get(ctx, a.ID.Hex()); err != nil {
		t.Errorf("a should survive its failed deletion, got %v", err)
	}
}

func TestConcurrentUploadsGetUniqueOrders(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()

	const n = 8
	var wg sync.WaitGroup
	errCh := make(chan error, n)

	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			opts := DefaultUploadOptions()
			opts.OwnerType = "product"
			opts.OwnerID = "42"
			opts.Collection = "gallery"
			_, err := svc.Upload(ctx, &Upload{
				Filename:    "f.txt",
				ContentType: "text/plain",
				Data:        []byte("x"),
			}, "uploads", opts)
			errCh <- err
		}()
	}
	wg.Wait()
	close(errCh)
	for err := range errCh {
		if err != nil {
			t.Fatalf("upload: %v", err)
		}
	}

	files, err := svc.For("product", "42").InCollection(ctx, "gallery")
	if err != nil {
		t.Fatalf("in collection: %v", err)
	}
	if len(files) != n {
		t.Fatalf("got %d files, want %d", len(files), n)
	}
	seen := map[int]bool{}
	for _, f := range files {
		if seen[f.Order] {
			t.Errorf("duplicate order %d", f.Order)
		}
		seen[f.Order] = true
		if f.Order < 0 || f.Order >= n {
			t.Errorf("order %d out of range", f.Order)
		}
	}
}
