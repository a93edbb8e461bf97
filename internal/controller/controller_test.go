package controller

import (
	"bytes"
	"errors"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"

	"github.com/julianstephens/thoughts/internal/constants"
	"github.com/julianstephens/thoughts/internal/logger"
	"github.com/julianstephens/thoughts/internal/models"
	"github.com/julianstephens/thoughts/internal/state"
	"github.com/julianstephens/thoughts/internal/storage"
)

// flakyStore fails writes while fail is set
type flakyStore struct {
	storage.Provider
	fail    bool
	failKey string
}

var errDiskFull = errors.New("disk full")

func (f *flakyStore) SetItem(key, value string) error {
	if f.fail && (f.failKey == "" || f.failKey == key) {
		return errDiskFull
	}
	return f.Provider.SetItem(key, value)
}

type clock struct{ t time.Time }

func (c *clock) now() time.Time { return c.t }

func setupStore(t *testing.T) storage.Provider {
	store := storage.NewJSONStore(filepath.Join(t.TempDir(), "thoughts.json"))
	if err := store.Init(); err != nil {
		t.Fatalf("failed to init store: %v", err)
	}
	return store
}

func setupController(t *testing.T, store storage.Provider, policy state.KeyPolicy) (*Controller, *clock) {
	clk := &clock{t: time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)}
	c, err := New(store, Options{Policy: policy, Now: clk.now})
	if err != nil {
		t.Fatalf("failed to create controller: %v", err)
	}
	return c, clk
}

func stored(t *testing.T, store storage.Provider) []models.Thought {
	t.Helper()
	thoughts, err := storage.LoadThoughts(store)
	if err != nil {
		t.Fatalf("LoadThoughts failed: %v", err)
	}
	return thoughts
}

func TestEveryMutationIsPersisted(t *testing.T) {
	store := setupStore(t)
	c, clk := setupController(t, store, state.KeyPolicyMonotonic)

	c.SetDraft("Hello")
	th, ok, err := c.Add()
	if err != nil || !ok {
		t.Fatalf("Add = %v, %v", ok, err)
	}
	if th.Key != 0 || th.Value != "Hello" {
		t.Errorf("added thought = %+v", th)
	}
	if c.Draft() != "" {
		t.Errorf("draft not cleared: %q", c.Draft())
	}
	if got := stored(t, store); !reflect.DeepEqual(got, c.Thoughts()) {
		t.Errorf("after add stored %+v, memory %+v", got, c.Thoughts())
	}

	if err := c.Toggle(0, models.ReactionLiked); err != nil {
		t.Fatalf("Toggle failed: %v", err)
	}
	if got := stored(t, store); !got[0].Liked {
		t.Error("like not persisted")
	}

	clk.t = clk.t.Add(3 * time.Minute)
	if err := c.Edit(0, "Hello world"); err != nil {
		t.Fatalf("Edit failed: %v", err)
	}
	got := stored(t, store)
	if got[0].Value != "Hello world" || got[0].LastEditted != clk.t.UnixMilli() {
		t.Errorf("edit not persisted: %+v", got[0])
	}

	if err := c.Delete(0); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if got := stored(t, store); len(got) != 0 {
		t.Errorf("delete not persisted: %+v", got)
	}
}

func TestAddEmptyDraft(t *testing.T) {
	store := setupStore(t)
	c, _ := setupController(t, store, state.KeyPolicyMonotonic)

	_, ok, err := c.Add()
	if err != nil || ok {
		t.Errorf("Add on empty draft = %v, %v", ok, err)
	}
	if _, present, _ := store.GetItem(constants.ThoughtsKey); present {
		t.Error("empty add should not write")
	}
}

func TestMonotonicKeysSurviveRestart(t *testing.T) {
	store := setupStore(t)
	c, _ := setupController(t, store, state.KeyPolicyMonotonic)

	for _, text := range []string{"a", "b"} {
		if _, _, err := c.AddText(text); err != nil {
			t.Fatalf("AddText failed: %v", err)
		}
	}
	if err := c.Delete(1); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}

	restarted, _ := setupController(t, store, state.KeyPolicyMonotonic)
	th, _, err := restarted.AddText("c")
	if err != nil {
		t.Fatalf("AddText failed: %v", err)
	}
	if th.Key != 2 {
		t.Errorf("key after restart = %d, want 2", th.Key)
	}
}

func TestLengthPolicyDoesNotWriteCounter(t *testing.T) {
	store := setupStore(t)
	c, _ := setupController(t, store, state.KeyPolicyLength)

	if _, _, err := c.AddText("a"); err != nil {
		t.Fatalf("AddText failed: %v", err)
	}
	if _, present, _ := store.GetItem(constants.NextKeyKey); present {
		t.Error("length policy should not persist a counter")
	}
}

func TestFailedSaveKeepsState(t *testing.T) {
	flaky := &flakyStore{Provider: setupStore(t)}
	c, _ := setupController(t, flaky, state.KeyPolicyMonotonic)

	if _, _, err := c.AddText("kept"); err != nil {
		t.Fatalf("AddText failed: %v", err)
	}
	before := c.State()

	flaky.fail = true
	c.SetDraft("lost")
	if _, _, err := c.Add(); !errors.Is(err, errDiskFull) {
		t.Fatalf("Add error = %v, want disk full", err)
	}
	if err := c.Delete(0); !errors.Is(err, errDiskFull) {
		t.Fatalf("Delete error = %v, want disk full", err)
	}

	after := c.State()
	if !reflect.DeepEqual(after.Thoughts, before.Thoughts) || after.NextKey != before.NextKey {
		t.Errorf("state changed after failed saves:\n got  %+v\n want %+v", after, before)
	}
	if c.Draft() != "lost" {
		t.Errorf("draft should survive a failed add, got %q", c.Draft())
	}
}

func TestFailedCounterSaveRestoresList(t *testing.T) {
	flaky := &flakyStore{Provider: setupStore(t), failKey: constants.NextKeyKey}
	c, _ := setupController(t, flaky, state.KeyPolicyMonotonic)

	flaky.fail = true
	if _, _, err := c.AddText("a"); err == nil {
		t.Fatal("expected counter save failure")
	}
	if got := stored(t, flaky); len(got) != 0 {
		t.Errorf("list should be rolled back in storage, got %+v", got)
	}
	if len(c.Thoughts()) != 0 {
		t.Error("list should be rolled back in memory")
	}
}

// lastWriteStore accepts the first list write, then fails every write
type lastWriteStore struct {
	storage.Provider
	listWrites int
}

func (s *lastWriteStore) SetItem(key, value string) error {
	if key == constants.ThoughtsKey {
		s.listWrites++
		if s.listWrites == 1 {
			return s.Provider.SetItem(key, value)
		}
	}
	return errDiskFull
}

func TestFailedRollbackIsLogged(t *testing.T) {
	var buf bytes.Buffer
	prev := logger.Logger
	logger.Logger = log.New(&buf)
	defer func() { logger.Logger = prev }()

	store := &lastWriteStore{Provider: setupStore(t)}
	c, _ := setupController(t, store, state.KeyPolicyMonotonic)

	if _, _, err := c.AddText("a"); !errors.Is(err, errDiskFull) {
		t.Fatalf("AddText error = %v, want disk full", err)
	}
	if store.listWrites != 2 {
		t.Errorf("list writes = %d, want the save and the rollback", store.listWrites)
	}
	if !strings.Contains(buf.String(), "Failed to restore thoughts after counter failure") {
		t.Errorf("rollback failure not logged:\n%s", buf.String())
	}
	if len(c.Thoughts()) != 0 {
		t.Error("memory should keep the previous list")
	}
}

func TestToggleEditCommits(t *testing.T) {
	store := setupStore(t)
	c, clk := setupController(t, store, state.KeyPolicyMonotonic)
	if _, _, err := c.AddText("draft"); err != nil {
		t.Fatalf("AddText failed: %v", err)
	}

	if err := c.ToggleEdit(0); err != nil {
		t.Fatalf("ToggleEdit failed: %v", err)
	}
	if !c.IsEditing(0) {
		t.Fatal("expected edit mode")
	}
	c.SetEditDraft(0, "final")
	clk.t = clk.t.Add(time.Minute)
	if err := c.ToggleEdit(0); err != nil {
		t.Fatalf("ToggleEdit failed: %v", err)
	}
	if c.IsEditing(0) {
		t.Error("expected viewing mode")
	}
	if got := stored(t, store); got[0].Value != "final" {
		t.Errorf("edit not committed: %+v", got[0])
	}

	c.BeginEdit(0)
	c.SetEditDraft(0, "abandoned")
	c.CancelEdit(0)
	if th, _ := c.Find(0); th.Value != "final" {
		t.Errorf("cancel saved the edit: %+v", th)
	}
}

func TestReactFixedValue(t *testing.T) {
	store := setupStore(t)
	c, _ := setupController(t, store, state.KeyPolicyMonotonic)
	if _, _, err := c.AddText("a"); err != nil {
		t.Fatalf("AddText failed: %v", err)
	}

	for i := 0; i < 2; i++ {
		if err := c.React(0, models.ReactionFavorite, true); err != nil {
			t.Fatalf("React failed: %v", err)
		}
	}
	if th, _ := c.Find(0); !th.Favorite {
		t.Error("favorite not set")
	}
}

func TestReplace(t *testing.T) {
	store := setupStore(t)
	c, _ := setupController(t, store, state.KeyPolicyMonotonic)

	imported := []models.Thought{{Key: 4, Value: "x"}, {Key: 9, Value: "y"}}
	if err := c.Replace(imported); err != nil {
		t.Fatalf("Replace failed: %v", err)
	}
	if got := stored(t, store); !reflect.DeepEqual(got, imported) {
		t.Errorf("stored = %+v", got)
	}

	th, _, err := c.AddText("z")
	if err != nil {
		t.Fatalf("AddText failed: %v", err)
	}
	if th.Key != 10 {
		t.Errorf("key after import = %d, want 10", th.Key)
	}
}

func TestNewFailsOnMalformedData(t *testing.T) {
	store := setupStore(t)
	if err := store.SetItem(constants.ThoughtsKey, "{not json"); err != nil {
		t.Fatalf("SetItem failed: %v", err)
	}
	if _, err := New(store, Options{}); err == nil {
		t.Error("expected error for malformed stored thoughts")
	}
}

func TestSnapshotIsIndependent(t *testing.T) {
	store := setupStore(t)
	c, _ := setupController(t, store, state.KeyPolicyMonotonic)
	if _, _, err := c.AddText("a"); err != nil {
		t.Fatalf("AddText failed: %v", err)
	}

	snap := c.State()
	snap.Thoughts[0].Value = "mutated"
	snap.Editing[0] = "x"

	if th, _ := c.Find(0); th.Value != "a" {
		t.Error("snapshot shares the thoughts slice")
	}
	if c.IsEditing(0) {
		t.Error("snapshot shares the editing map")
	}
}
