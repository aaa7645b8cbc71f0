package workout

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/fitnest/fitnest-api/internal/middleware"
)

type fakeRepo struct {
	workouts map[uuid.UUID]*Workout
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{workouts: make(map[uuid.UUID]*Workout)}
}

func (f *fakeRepo) Create(_ context.Context, workout *Workout) error {
	if workout.ID == uuid.Nil {
		workout.ID = uuid.New()
	}
	if workout.CreatedAt.IsZero() {
		workout.CreatedAt = time.Now()
	}
	f.workouts[workout.ID] = workout
	return nil
}

func (f *fakeRepo) GetByID(_ context.Context, id uuid.UUID) (*Workout, error) {
	return f.workouts[id], nil
}

func (f *fakeRepo) ListByUser(_ context.Context, userID uuid.UUID) ([]*Workout, error) {
	var out []*Workout
	for _, workout := range f.workouts {
		if workout.UserID == userID {
			out = append(out, workout)
		}
	}
	return out, nil
}

func (f *fakeRepo) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := f.workouts[id]; !ok {
		return ErrWorkoutNotFound
	}
	delete(f.workouts, id)
	return nil
}

func noopAuth(userID uuid.UUID) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := context.WithValue(r.Context(), middleware.UserIDKey, userID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func newTestRouter(repo Repository, userID uuid.UUID) chi.Router {
	return NewHandler(repo).Routes(noopAuth(userID))
}

func TestAdd(t *testing.T) {
	userID := uuid.New()
	repo := newFakeRepo()
	router := newTestRouter(repo, userID)

	body := `{"name":"bench press","muscle_group":"chest","duration_minutes":45,"sets":4,"reps":8,"description":"heavy day"}`
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body)))

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	if len(repo.workouts) != 1 {
		t.Fatalf("workout not stored")
	}
	for _, workout := range repo.workouts {
		if workout.MuscleGroup != MuscleGroupChest {
			t.Fatalf("expected chest, got %q", workout.MuscleGroup)
		}
	}
}

func TestAddRejectsUnknownMuscleGroup(t *testing.T) {
	router := newTestRouter(newFakeRepo(), uuid.New())

	body := `{"name":"yoga","muscle_group":"core","duration_minutes":30,"sets":1,"reps":1}`
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body)))

	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422 for unknown muscle group, got %d", rec.Code)
	}
}

func TestListOwnerScoped(t *testing.T) {
	alice, bob := uuid.New(), uuid.New()
	repo := newFakeRepo()

	for _, owner := range []uuid.UUID{alice, alice, bob} {
		workout := &Workout{UserID: owner, Name: "squats", MuscleGroup: MuscleGroupLegs,
			DurationMinutes: 30, Sets: 3, Reps: 10}
		if err := repo.Create(context.Background(), workout); err != nil {
			t.Fatalf("seed: %v", err)
		}
	}

	router := newTestRouter(repo, alice)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if got := strings.Count(rec.Body.String(), `"squats"`); got != 2 {
		t.Fatalf("expected alice's 2 workouts, got %d", got)
	}
}

func TestDeleteForeignWorkout(t *testing.T) {
	owner, intruder := uuid.New(), uuid.New()
	repo := newFakeRepo()

	workout := &Workout{UserID: owner, Name: "deadlift", MuscleGroup: MuscleGroupBack,
		DurationMinutes: 20, Sets: 5, Reps: 5}
	if err := repo.Create(context.Background(), workout); err != nil {
		t.Fatalf("seed: %v", err)
	}

	router := newTestRouter(repo, intruder)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, "/"+workout.ID.String(), nil))

	if rec.Code != http.StatusNotFound {
		t.Fatalf("foreign workout should look missing, got %d", rec.Code)
	}
	if len(repo.workouts) != 1 {
		t.Fatalf("foreign workout must not be deleted")
	}
}
