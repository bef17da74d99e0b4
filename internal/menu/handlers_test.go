package menu_test

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/mkrupp/movieshelf/internal/cli"
	"github.com/mkrupp/movieshelf/internal/domain"
	"github.com/mkrupp/movieshelf/internal/menu"
	movierepo "github.com/mkrupp/movieshelf/internal/repo/movie"
	userrepo "github.com/mkrupp/movieshelf/internal/repo/user"
	"github.com/mkrupp/movieshelf/internal/session"
	"github.com/mkrupp/movieshelf/internal/svc/catalogsvc"
	"github.com/mkrupp/movieshelf/internal/svc/catalogsvc/omdbclient"
)

type mockMovieRepository struct {
	movies map[string]domain.Movie
}

func newMockMovieRepository() *mockMovieRepository {
	return &mockMovieRepository{movies: make(map[string]domain.Movie)}
}

func (m *mockMovieRepository) ListMovies(_ context.Context, _ int64) (domain.MovieSet, error) {
	out := make(domain.MovieSet, len(m.movies))
	for title, mov := range m.movies {
		out[title] = mov
	}

	return out, nil
}

func (m *mockMovieRepository) AddMovie(_ context.Context, _ int64, mov domain.Movie) error {
	if _, exists := m.movies[mov.Title]; exists {
		return domain.ErrDuplicateTitle
	}

	m.movies[mov.Title] = mov

	return nil
}

func (m *mockMovieRepository) DeleteMovie(_ context.Context, _ int64, title string) error {
	if _, exists := m.movies[title]; !exists {
		return domain.ErrMovieNotFound
	}

	delete(m.movies, title)

	return nil
}

func (m *mockMovieRepository) UpdateNoteAndFavorite(
	_ context.Context, _ int64, title, note string, favorite bool,
) error {
	mov, exists := m.movies[title]
	if !exists {
		return domain.ErrMovieNotFound
	}

	mov.Note = note
	mov.IsFavorite = favorite
	m.movies[title] = mov

	return nil
}

func (m *mockMovieRepository) UpdateRating(_ context.Context, _ int64, title string, rating float64) error {
	mov, exists := m.movies[title]
	if !exists {
		return domain.ErrMovieNotFound
	}

	mov.Rating = rating
	m.movies[title] = mov

	return nil
}

func (m *mockMovieRepository) Close() error { return nil }

type mockUserRepository struct {
	users []domain.User
}

func (m *mockUserRepository) EnsureUser(_ context.Context, username string) (int64, error) {
	if username == "" {
		return 0, domain.ErrInvalidUsername
	}

	for _, usr := range m.users {
		if usr.Username == username {
			return usr.ID, nil
		}
	}

	usr := domain.User{ID: int64(len(m.users) + 1), Username: username}
	m.users = append(m.users, usr)

	return usr.ID, nil
}

func (m *mockUserRepository) ListUsers(_ context.Context) ([]domain.User, error) {
	return append([]domain.User(nil), m.users...), nil
}

func (m *mockUserRepository) GetUsername(_ context.Context, userID int64) (string, bool, error) {
	for _, usr := range m.users {
		if usr.ID == userID {
			return usr.Username, true, nil
		}
	}

	return "", false, nil
}

func (m *mockUserRepository) Close() error { return nil }

type mockMetadataClient struct {
	lookups map[string]domain.Movie
}

func (m *mockMetadataClient) Lookup(_ context.Context, title string) (domain.Movie, error) {
	mov, ok := m.lookups[title]
	if !ok {
		return domain.Movie{}, omdbclient.ErrTitleNotFound
	}

	return mov, nil
}

type handlerFixture struct {
	handlers  *menu.Handlers
	catalog   *catalogsvc.CatalogService
	movieRepo *mockMovieRepository
	out       *bytes.Buffer
}

func newHandlerFixture(t *testing.T, input string, active bool) *handlerFixture {
	t.Helper()

	movieRepo := newMockMovieRepository()
	userRepo := &mockUserRepository{}
	metadata := &mockMetadataClient{lookups: map[string]domain.Movie{
		"Arrival": {Title: "Arrival", Year: 2016, Rating: 7.9, IMDbID: "tt2543164"},
	}}

	sess := session.New()
	if active {
		sess.SetActive(1, "maria")
	}

	catalog, err := catalogsvc.NewCatalogService(
		func() (movierepo.Repository, error) { return movieRepo, nil },
		func() (userrepo.Repository, error) { return userRepo, nil },
		sess,
		metadata,
	)
	if err != nil {
		t.Fatalf("NewCatalogService() error = %v", err)
	}

	var out bytes.Buffer

	printer := cli.NewPrinter(&out, false)
	prompter := cli.NewPrompter(strings.NewReader(input), printer)

	return &handlerFixture{
		handlers:  menu.NewHandlers(catalog, nil, nil, prompter, printer),
		catalog:   catalog,
		movieRepo: movieRepo,
		out:       &out,
	}
}

func TestHandlers_AddMovie(t *testing.T) {
	t.Parallel()

	fix := newHandlerFixture(t, "Arrival\n", true)
	movies := domain.MovieSet{}

	if err := fix.handlers.AddMovie(context.Background(), movies); err != nil {
		t.Fatalf("AddMovie() error = %v", err)
	}

	if _, ok := movies["Arrival"]; !ok {
		t.Error("AddMovie() did not insert into working collection")
	}

	if _, ok := fix.movieRepo.movies["Arrival"]; !ok {
		t.Error("AddMovie() did not persist")
	}

	if !strings.Contains(fix.out.String(), "successfully added") {
		t.Error("AddMovie() did not confirm")
	}
}

func TestHandlers_AddMovie_NotFound(t *testing.T) {
	t.Parallel()

	fix := newHandlerFixture(t, "Unknown Movie\n", true)
	movies := domain.MovieSet{}

	if err := fix.handlers.AddMovie(context.Background(), movies); err != nil {
		t.Fatalf("AddMovie() error = %v", err)
	}

	if len(movies) != 0 {
		t.Error("AddMovie() mutated collection for unknown title")
	}

	if !strings.Contains(fix.out.String(), "not found") {
		t.Error("AddMovie() did not report missing title")
	}
}

func TestHandlers_AddMovie_NoActiveUser(t *testing.T) {
	t.Parallel()

	fix := newHandlerFixture(t, "Arrival\n", false)
	movies := domain.MovieSet{}

	if err := fix.handlers.AddMovie(context.Background(), movies); err == nil {
		t.Error("AddMovie() expected error without active user")
	}

	if len(movies) != 0 || len(fix.movieRepo.movies) != 0 {
		t.Error("AddMovie() mutated state without active user")
	}
}

func TestHandlers_DeleteMovie(t *testing.T) {
	t.Parallel()

	fix := newHandlerFixture(t, "Alien\n", true)
	fix.movieRepo.movies["Alien"] = domain.Movie{Title: "Alien", Year: 1979, Rating: 8.5}
	movies := domain.MovieSet{"Alien": fix.movieRepo.movies["Alien"]}

	if err := fix.handlers.DeleteMovie(context.Background(), movies); err != nil {
		t.Fatalf("DeleteMovie() error = %v", err)
	}

	if len(movies) != 0 || len(fix.movieRepo.movies) != 0 {
		t.Error("DeleteMovie() left record behind")
	}
}

func TestHandlers_DeleteMovie_NotFound(t *testing.T) {
	t.Parallel()

	fix := newHandlerFixture(t, "Ghost\n", true)
	movies := domain.MovieSet{"Alien": {Title: "Alien"}}

	if err := fix.handlers.DeleteMovie(context.Background(), movies); err != nil {
		t.Fatalf("DeleteMovie() error = %v", err)
	}

	if !strings.Contains(fix.out.String(), "doesn't exist") {
		t.Error("DeleteMovie() did not report missing title")
	}

	if len(movies) != 1 {
		t.Error("DeleteMovie() mutated collection for missing title")
	}
}

func TestHandlers_UpdateMovie(t *testing.T) {
	t.Parallel()

	fix := newHandlerFixture(t, "Alien\ngreat rewatch\ny\n", true)
	fix.movieRepo.movies["Alien"] = domain.Movie{Title: "Alien", Year: 1979, Rating: 8.5}
	movies := domain.MovieSet{"Alien": fix.movieRepo.movies["Alien"]}

	if err := fix.handlers.UpdateMovie(context.Background(), movies); err != nil {
		t.Fatalf("UpdateMovie() error = %v", err)
	}

	mov := movies["Alien"]
	if mov.Note != "great rewatch" || !mov.IsFavorite {
		t.Errorf("UpdateMovie() collection entry = %+v", mov)
	}

	stored := fix.movieRepo.movies["Alien"]
	if stored.Note != "great rewatch" || !stored.IsFavorite {
		t.Errorf("UpdateMovie() stored entry = %+v", stored)
	}
}

func TestHandlers_UpdateRating(t *testing.T) {
	t.Parallel()

	fix := newHandlerFixture(t, "Alien\n9.1\n", true)
	fix.movieRepo.movies["Alien"] = domain.Movie{Title: "Alien", Year: 1979, Rating: 8.5}
	movies := domain.MovieSet{"Alien": fix.movieRepo.movies["Alien"]}

	if err := fix.handlers.UpdateRating(context.Background(), movies); err != nil {
		t.Fatalf("UpdateRating() error = %v", err)
	}

	if got := movies["Alien"].Rating; got != 9.1 {
		t.Errorf("UpdateRating() rating = %g, want 9.1", got)
	}
}

func TestHandlers_Stats(t *testing.T) {
	t.Parallel()

	fix := newHandlerFixture(t, "", true)
	movies := domain.MovieSet{
		"Alien":   {Title: "Alien", Rating: 8.5},
		"Contact": {Title: "Contact", Rating: 7.5},
	}

	if err := fix.handlers.Stats(context.Background(), movies); err != nil {
		t.Fatalf("Stats() error = %v", err)
	}

	output := fix.out.String()

	for _, want := range []string{
		"Average rating: 8.0",
		"Median rating: 8.0",
		"Best movie(s): Alien (8.5)",
		"Worst movie(s): Contact (7.5)",
	} {
		if !strings.Contains(output, want) {
			t.Errorf("Stats() output missing %q", want)
		}
	}
}

func TestHandlers_SearchMovie(t *testing.T) {
	t.Parallel()

	fix := newHandlerFixture(t, "ali\n", true)
	movies := domain.MovieSet{
		"Alien":   {Title: "Alien", Year: 1979, Rating: 8.5},
		"Contact": {Title: "Contact", Year: 1997, Rating: 7.5},
	}

	if err := fix.handlers.SearchMovie(context.Background(), movies); err != nil {
		t.Fatalf("SearchMovie() error = %v", err)
	}

	output := fix.out.String()
	if !strings.Contains(output, "Alien") {
		t.Error("SearchMovie() missed matching title")
	}

	if strings.Contains(output, "Contact") {
		t.Error("SearchMovie() printed non-matching title")
	}
}

func TestHandlers_FilterMovies_BlankBoundsMatchAll(t *testing.T) {
	t.Parallel()

	fix := newHandlerFixture(t, "\n\n\n", true)
	movies := domain.MovieSet{
		"Alien":   {Title: "Alien", Year: 1979, Rating: 8.5},
		"Contact": {Title: "Contact", Year: 1997, Rating: 7.5},
	}

	if err := fix.handlers.FilterMovies(context.Background(), movies); err != nil {
		t.Fatalf("FilterMovies() error = %v", err)
	}

	output := fix.out.String()
	if !strings.Contains(output, "Alien") || !strings.Contains(output, "Contact") {
		t.Error("FilterMovies() with blank bounds did not match all movies")
	}
}

func TestHandlers_SortMovies(t *testing.T) {
	t.Parallel()

	fix := newHandlerFixture(t, "year\nn\n", true)
	movies := domain.MovieSet{
		"Alien":   {Title: "Alien", Year: 1979, Rating: 8.5},
		"Arrival": {Title: "Arrival", Year: 2016, Rating: 7.9},
	}

	if err := fix.handlers.SortMovies(context.Background(), movies); err != nil {
		t.Fatalf("SortMovies() error = %v", err)
	}

	output := fix.out.String()
	if strings.Index(output, "Alien") > strings.Index(output, "Arrival") {
		t.Error("SortMovies() ascending by year printed wrong order")
	}
}
