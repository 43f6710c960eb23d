package grouptask

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/dcastellm/taskboard/internal/auth"
	"github.com/dcastellm/taskboard/internal/group"
)

// memRepo is an in-memory Repository. UpdateStatus honors the same
// conditional-write contract as the real store.
type memRepo struct {
	nextID int64
	tasks  map[int64]*GroupTask

	// updateStatusHook, when set, replaces UpdateStatus. Used to simulate
	// a lost race.
	updateStatusHook func(ctx context.Context, id int64, status string, assignedTo int64) (*GroupTask, error)
}

func newMemRepo() *memRepo {
	return &memRepo{tasks: make(map[int64]*GroupTask)}
}

func (m *memRepo) Create(ctx context.Context, t *GroupTask) (*GroupTask, error) {
	m.nextID++
	stored := *t
	stored.ID = m.nextID
	stored.CreatedAt = time.Now()
	m.tasks[stored.ID] = &stored
	cp := stored
	return &cp, nil
}

func (m *memRepo) GetByID(ctx context.Context, id int64) (*GroupTask, error) {
	t, ok := m.tasks[id]
	if !ok {
		return nil, nil
	}
	cp := *t
	return &cp, nil
}

func (m *memRepo) ListByGroup(ctx context.Context, groupID int64) ([]*GroupTask, error) {
	var out []*GroupTask
	for _, t := range m.tasks {
		if t.GroupID == groupID {
			cp := *t
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (m *memRepo) UpdateStatus(ctx context.Context, id int64, status string, assignedTo int64) (*GroupTask, error) {
	if m.updateStatusHook != nil {
		return m.updateStatusHook(ctx, id, status, assignedTo)
	}
	t, ok := m.tasks[id]
	if !ok || t.AssignedTo != assignedTo {
		return nil, nil
	}
	t.Status = status
	now := time.Now()
	t.UpdatedAt = &now
	cp := *t
	return &cp, nil
}

// memGroups is an in-memory GroupStore
type memGroups struct {
	groups map[int64]*group.Group
}

func (m *memGroups) GetByID(ctx context.Context, id int64) (*group.Group, error) {
	g, ok := m.groups[id]
	if !ok {
		return nil, nil
	}
	return g, nil
}

func newTestService() (*Service, *memRepo) {
	repo := newMemRepo()
	groups := &memGroups{groups: map[int64]*group.Group{
		1: {ID: 1, Name: "ops", Description: "on-call", MemberIDs: []int64{3, 4}, CreatedBy: 3},
	}}
	return NewService(repo, groups), repo
}

var (
	creator  = &auth.Principal{UserID: 3, Username: "carol", Role: auth.RoleUser}
	assignee = &auth.Principal{UserID: 4, Username: "dave", Role: auth.RoleUser}
	outsider = &auth.Principal{UserID: 9, Username: "eve", Role: auth.RoleUser}
)

func validCreateReq() *CreateGroupTaskRequest {
	return &CreateGroupTaskRequest{
		Name:        "Rotate keys",
		Description: "Quarterly credential rotation",
		AssignedTo:  4,
		Status:      StatusToDo,
	}
}

func TestCreateOnlyGroupCreator(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	// Not the group's creator.
	if _, err := svc.Create(ctx, outsider, 1, validCreateReq()); !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected ErrForbidden for non-creator, got %v", err)
	}

	// The creator succeeds and gets a new id.
	created, err := svc.Create(ctx, creator, 1, validCreateReq())
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if created.ID == 0 {
		t.Fatal("expected an assigned id")
	}
	if created.CreatedBy != creator.UserID {
		t.Errorf("expected created_by %d, got %d", creator.UserID, created.CreatedBy)
	}

	tasks, err := svc.List(ctx, 1)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	found := false
	for _, task := range tasks {
		if task.ID == created.ID {
			found = true
		}
	}
	if !found {
		t.Errorf("expected task %d in listing", created.ID)
	}
}

func TestCreateMissingGroup(t *testing.T) {
	svc, _ := newTestService()

	if _, err := svc.Create(context.Background(), creator, 42, validCreateReq()); !errors.Is(err, ErrGroupNotFound) {
		t.Fatalf("expected ErrGroupNotFound, got %v", err)
	}
}

func TestCreateValidation(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	mutations := map[string]func(*CreateGroupTaskRequest){
		"name":                func(r *CreateGroupTaskRequest) { r.Name = "" },
		"description":         func(r *CreateGroupTaskRequest) { r.Description = "" },
		"assigned_to_user_id": func(r *CreateGroupTaskRequest) { r.AssignedTo = 0 },
		"status":              func(r *CreateGroupTaskRequest) { r.Status = "" },
	}

	for field, clear := range mutations {
		t.Run("missing "+field, func(t *testing.T) {
			req := validCreateReq()
			clear(req)
			if _, err := svc.Create(ctx, creator, 1, req); !errors.Is(err, ErrValidation) {
				t.Fatalf("expected ErrValidation, got %v", err)
			}
		})
	}
}

// An existing group with zero tasks is an empty list, not an error.
func TestListEmptyGroupIsNotAnError(t *testing.T) {
	svc, _ := newTestService()

	tasks, err := svc.List(context.Background(), 1)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if tasks == nil || len(tasks) != 0 {
		t.Fatalf("expected empty list, got %v", tasks)
	}
}

func TestListMissingGroup(t *testing.T) {
	svc, _ := newTestService()

	if _, err := svc.List(context.Background(), 42); !errors.Is(err, ErrGroupNotFound) {
		t.Fatalf("expected ErrGroupNotFound, got %v", err)
	}
}

func TestUpdateStatusOnlyAssignee(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	created, err := svc.Create(ctx, creator, 1, validCreateReq())
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	// The creator is not the assignee here.
	if _, err := svc.UpdateStatus(ctx, creator, created.ID, &UpdateStatusRequest{Status: StatusInProgress}); !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected ErrForbidden for non-assignee, got %v", err)
	}

	// Any status string the assignee supplies is written verbatim.
	updated, err := svc.UpdateStatus(ctx, assignee, created.ID, &UpdateStatusRequest{Status: "Blocked"})
	if err != nil {
		t.Fatalf("assignee update: %v", err)
	}
	if updated.Status != "Blocked" {
		t.Errorf("expected status 'Blocked', got %q", updated.Status)
	}
	if updated.UpdatedAt == nil {
		t.Error("expected updated_at to be set")
	}

	tasks, err := svc.List(ctx, 1)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(tasks) != 1 || tasks[0].Status != "Blocked" {
		t.Errorf("expected listing to reflect the new status, got %+v", tasks)
	}
}

func TestUpdateStatusMissingTask(t *testing.T) {
	svc, _ := newTestService()

	if _, err := svc.UpdateStatus(context.Background(), assignee, 99, &UpdateStatusRequest{Status: StatusDone}); !errors.Is(err, ErrTaskNotFound) {
		t.Fatalf("expected ErrTaskNotFound, got %v", err)
	}
}

func TestUpdateStatusLostRaceIsConflict(t *testing.T) {
	svc, repo := newTestService()
	ctx := context.Background()

	created, err := svc.Create(ctx, creator, 1, validCreateReq())
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	// The conditional write matches no row, as if the task was reassigned
	// between the read and the write.
	repo.updateStatusHook = func(ctx context.Context, id int64, status string, assignedTo int64) (*GroupTask, error) {
		return nil, nil
	}

	if _, err := svc.UpdateStatus(ctx, assignee, created.ID, &UpdateStatusRequest{Status: StatusDone}); !errors.Is(err, ErrConflict) {
		t.Fatalf("expected ErrConflict on lost race, got %v", err)
	}
}

// Round trip: a created task appears in the listing with the exact field
// values that were submitted.
func TestCreateListRoundTrip(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	req := validCreateReq()
	created, err := svc.Create(ctx, creator, 1, req)
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	tasks, err := svc.List(ctx, 1)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(tasks) != 1 {
		t.Fatalf("expected 1 task, got %d", len(tasks))
	}

	got := tasks[0]
	if got.ID != created.ID ||
		got.Name != req.Name ||
		got.Description != req.Description ||
		got.AssignedTo != req.AssignedTo ||
		got.Status != req.Status {
		t.Errorf("listed task %+v does not match submitted %+v", got, req)
	}
}
