package integration

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log"
	"net/http/httptest"
	"os"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	"jobpath/internal/config"
	"jobpath/internal/database"
	"jobpath/internal/database/migration"
	dbpostgres "jobpath/internal/database/postgres"
	"jobpath/internal/delivery/http/middleware"
	"jobpath/internal/delivery/http/routes"
	"jobpath/internal/ws"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

type semanticResponse struct {
	Status  int             `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

type recommendationItem struct {
	JobID           uuid.UUID `json:"job_id"`
	Title           string    `json:"title"`
	Company         string    `json:"company"`
	Location        string    `json:"location"`
	SimilarityScore float64   `json:"similarity_score"`
	Skills          []string  `json:"skills"`
}

func TestIntegration_Login_Recommendations(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	db := connectTestDB(t, ctx)
	defer func() { _ = db.Close() }()

	runMigrations(t, ctx, db)

	seed := seedDummyData(t, ctx, db)
	defer cleanupSeed(t, ctx, db, seed)

	app := newTestFiberApp(t, seed.cfg, db)

	tok := loginAndGetJWT(t, app)
	if tok == "" {
		t.Fatalf("login: empty access_token")
	}

	recs := callRecommendations(t, app, tok)
	if len(recs) == 0 {
		t.Fatalf("recommendations: expected non-empty array")
	}

	assertNoDuplicateJobs(t, recs)
	assertSortedByScoreDesc(t, recs)

	found := false
	for _, it := range recs {
		if it.JobID == seed.jobExactID {
			found = true
			if it.SimilarityScore < recs[len(recs)-1].SimilarityScore {
				t.Fatalf("recommendations: exact-overlap job not ranked above the rest")
			}
		}
		if it.SimilarityScore <= 0 || it.SimilarityScore > 1 {
			t.Fatalf("recommendations: score %v out of (0,1]", it.SimilarityScore)
		}
	}
	if !found {
		t.Fatalf("recommendations: expected seeded job to appear in response")
	}
}

func connectTestDB(t *testing.T, ctx context.Context) database.DB {
	t.Helper()

	host := stringsOrDefault(os.Getenv("JOBPATH_TEST_DB_HOST"), os.Getenv("DB_HOST"))
	port := stringsOrDefault(os.Getenv("JOBPATH_TEST_DB_PORT"), os.Getenv("DB_PORT"))
	name := stringsOrDefault(os.Getenv("JOBPATH_TEST_DB_NAME"), os.Getenv("DB_NAME"))
	user := stringsOrDefault(os.Getenv("JOBPATH_TEST_DB_USER"), os.Getenv("DB_USER"))
	pass := stringsOrDefault(os.Getenv("JOBPATH_TEST_DB_PASSWORD"), os.Getenv("DB_PASSWORD"))
	ssl := stringsOrDefault(os.Getenv("JOBPATH_TEST_DB_SSL_MODE"), os.Getenv("DB_SSL_MODE"))

	if host == "" || port == "" || name == "" || user == "" {
		t.Skip("missing test DB env vars: set JOBPATH_TEST_DB_HOST/PORT/NAME/USER/PASSWORD (or DB_HOST/DB_PORT/DB_NAME/DB_USER/DB_PASSWORD)")
	}
	if ssl == "" {
		ssl = "disable"
	}

	dbcfg := config.DatabaseConfig{
		DBHost:     host,
		DBPort:     port,
		DBName:     name,
		DBUser:     user,
		DBPassword: pass,
		DBSSLMode:  ssl,
	}

	db, err := dbpostgres.Connect(ctx, dbcfg)
	if err != nil {
		t.Fatalf("connect db: %v", err)
	}
	return db
}

func runMigrations(t *testing.T, ctx context.Context, db database.DB) {
	t.Helper()

	r := migration.Runner{Dir: resolveMigrationsDir(t)}
	if err := r.Run(ctx, db.SQLDB()); err != nil {
		t.Fatalf("run migrations: %v", err)
	}
}

func resolveMigrationsDir(t *testing.T) string {
	t.Helper()

	_, file, _, ok := runtime.Caller(0)
	if !ok {
		t.Fatalf("resolve migrations dir: runtime.Caller failed")
	}

	// this file: internal/integration/recommendation_flow_test.go
	root := filepath.Clean(filepath.Join(filepath.Dir(file), "..", ".."))
	migDir := filepath.Join(root, "migrations")

	if st, err := os.Stat(migDir); err != nil || !st.IsDir() {
		t.Fatalf("resolve migrations dir: not found or not a dir: %s", migDir)
	}
	return migDir
}

type seededIDs struct {
	cfg        config.Config
	userID     uuid.UUID
	jobExactID uuid.UUID
	jobOtherID uuid.UUID
	sourceID   uuid.UUID
	skillIDs   map[string]uuid.UUID
}

func seedDummyData(t *testing.T, ctx context.Context, db database.DB) seededIDs {
	t.Helper()

	out := seededIDs{
		cfg: config.Config{
			App: config.AppConfig{AppName: "jobpath", Environment: "test", HTTPPort: "0"},
			JWT: config.JWTConfig{
				AccessSecret:     stringsOrDefault(os.Getenv("JOBPATH_TEST_JWT_ACCESS_SECRET"), "test-access-secret"),
				RefreshSecret:    stringsOrDefault(os.Getenv("JOBPATH_TEST_JWT_REFRESH_SECRET"), "test-refresh-secret"),
				AccessExpiresIn:  15 * time.Minute,
				RefreshExpiresIn: 24 * time.Hour,
			},
		},
		skillIDs: map[string]uuid.UUID{},
	}

	out.sourceID = ensureJobSource(t, ctx, db, "it-test-source")

	for _, name := range []string{"Go", "PostgreSQL", "Docker", "Redis"} {
		out.skillIDs[name] = ensureSkill(t, ctx, db, name)
	}

	out.jobExactID = ensureJob(t, ctx, db, out.sourceID, "it-test-job-exact", "Backend Engineer (Go)", "IT Co", "Jakarta")
	out.jobOtherID = ensureJob(t, ctx, db, out.sourceID, "it-test-job-other", "Platform Engineer", "IT Co", "Remote")

	ensureJobSkill(t, ctx, db, out.jobExactID, "Go")
	ensureJobSkill(t, ctx, db, out.jobExactID, "PostgreSQL")
	ensureJobSkill(t, ctx, db, out.jobOtherID, "Go")
	ensureJobSkill(t, ctx, db, out.jobOtherID, "Docker")
	ensureJobSkill(t, ctx, db, out.jobOtherID, "Redis")

	out.userID = ensureUser(t, ctx, db, "user@example.com", "password")

	ensureUserSkill(t, ctx, db, out.userID, out.skillIDs["Go"], "hard")
	ensureUserSkill(t, ctx, db, out.userID, out.skillIDs["PostgreSQL"], "hard")

	return out
}

func cleanupSeed(t *testing.T, ctx context.Context, db database.DB, seed seededIDs) {
	t.Helper()

	_, _ = db.Exec(ctx, `DELETE FROM user_skills WHERE user_id = $1`, seed.userID)
	_, _ = db.Exec(ctx, `DELETE FROM users WHERE id = $1`, seed.userID)
	_, _ = db.Exec(ctx, `DELETE FROM job_skills WHERE job_id = $1 OR job_id = $2`, seed.jobExactID, seed.jobOtherID)
	_, _ = db.Exec(ctx, `DELETE FROM jobs WHERE id = $1 OR id = $2`, seed.jobExactID, seed.jobOtherID)
	_, _ = db.Exec(ctx, `DELETE FROM job_sources WHERE id = $1`, seed.sourceID)
}

func newTestFiberApp(t *testing.T, cfg config.Config, db database.DB) *fiber.App {
	t.Helper()

	logger := log.New(io.Discard, "", 0)
	hub := ws.NewHub(logger)
	go hub.Run()

	app := fiber.New(fiber.Config{})
	app.Use(middleware.NewErrorMiddleware().Middleware())

	routes.Register(app, routes.Deps{
		Config: cfg,
		DB:     db,
		Cache:  nil,
		Hub:    hub,
		Logger: logger,
	})
	return app
}

func loginAndGetJWT(t *testing.T, app *fiber.App) string {
	t.Helper()

	body := map[string]string{"email": "user@example.com", "password": "password"}
	b, _ := json.Marshal(body)

	req := httptest.NewRequest("POST", "/api/v1/auth/login", bytes.NewReader(b))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("login request error: %v", err)
	}
	defer resp.Body.Close()

	var sr semanticResponse
	if err := json.NewDecoder(resp.Body).Decode(&sr); err != nil {
		t.Fatalf("login decode error: %v", err)
	}
	if sr.Status != 200 {
		t.Fatalf("login: expected status=200, got %d (message=%s)", sr.Status, sr.Message)
	}

	var m map[string]json.RawMessage
	if err := json.Unmarshal(sr.Data, &m); err != nil {
		t.Fatalf("login: data unmarshal error: %v", err)
	}
	var tok string
	if raw, ok := m["access_token"]; ok {
		_ = json.Unmarshal(raw, &tok)
	}
	if tok == "" {
		t.Fatalf("login: missing access_token")
	}
	return tok
}

func callRecommendations(t *testing.T, app *fiber.App, jwt string) []recommendationItem {
	t.Helper()

	req := httptest.NewRequest("GET", "/api/v1/jobs/recommendations?limit=5", nil)
	req.Header.Set("Authorization", "Bearer "+jwt)

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("recommendations request error: %v", err)
	}
	defer resp.Body.Close()

	var sr semanticResponse
	if err := json.NewDecoder(resp.Body).Decode(&sr); err != nil {
		t.Fatalf("recommendations decode error: %v", err)
	}
	if sr.Status != 200 {
		t.Fatalf("recommendations: expected status=200, got %d (message=%s)", sr.Status, sr.Message)
	}

	var items []recommendationItem
	if err := json.Unmarshal(sr.Data, &items); err != nil {
		t.Fatalf("recommendations: data unmarshal error: %v", err)
	}
	return items
}

func assertSortedByScoreDesc(t *testing.T, items []recommendationItem) {
	t.Helper()

	for i := 1; i < len(items); i++ {
		if items[i].SimilarityScore > items[i-1].SimilarityScore {
			t.Fatalf("recommendations: expected similarity_score descending at idx=%d: prev=%v cur=%v", i, items[i-1].SimilarityScore, items[i].SimilarityScore)
		}
	}
}

func assertNoDuplicateJobs(t *testing.T, items []recommendationItem) {
	t.Helper()

	seen := map[uuid.UUID]struct{}{}
	for i, it := range items {
		if it.JobID == uuid.Nil {
			t.Fatalf("recommendations: idx=%d has nil job_id", i)
		}
		if _, ok := seen[it.JobID]; ok {
			t.Fatalf("recommendations: duplicate job_id=%s", it.JobID)
		}
		seen[it.JobID] = struct{}{}
	}
}

func ensureJobSource(t *testing.T, ctx context.Context, db database.DB, name string) uuid.UUID {
	t.Helper()

	_, err := db.Exec(ctx,
		`INSERT INTO job_sources (id, name, base_url) VALUES ($1,$2,$3)
		 ON CONFLICT (name) DO NOTHING`,
		uuid.New(), name, "https://example.test",
	)
	if err != nil {
		t.Fatalf("seed job_source: %v", err)
	}

	row := db.QueryRow(ctx, `SELECT id FROM job_sources WHERE name = $1 LIMIT 1`, name)
	var got uuid.UUID
	if err := row.Scan(&got); err != nil {
		t.Fatalf("seed job_source select: %v", err)
	}
	return got
}

func ensureSkill(t *testing.T, ctx context.Context, db database.DB, name string) uuid.UUID {
	t.Helper()

	_, err := db.Exec(ctx,
		`INSERT INTO skills (id, name, category) VALUES ($1,$2,$3)
		 ON CONFLICT (name) DO NOTHING`,
		uuid.New(), name, "IT",
	)
	if err != nil {
		t.Fatalf("seed skill %s: %v", name, err)
	}

	row := db.QueryRow(ctx, `SELECT id FROM skills WHERE name = $1 LIMIT 1`, name)
	var got uuid.UUID
	if err := row.Scan(&got); err != nil {
		t.Fatalf("seed skill select %s: %v", name, err)
	}
	return got
}

func ensureJob(t *testing.T, ctx context.Context, db database.DB, sourceID uuid.UUID, externalID, title, company, location string) uuid.UUID {
	t.Helper()

	_, err := db.Exec(ctx,
		`INSERT INTO jobs (id, source_id, external_job_id, title, company, location, description, url, is_active, posted_at, ingested_at)
		 VALUES ($1,$2,$3,$4,$5,$6,$7,$8,TRUE,now(),now())
		 ON CONFLICT (source_id, external_job_id) DO NOTHING`,
		uuid.New(), sourceID, externalID, title, company, location, "desc", "https://example.test/"+externalID,
	)
	if err != nil {
		t.Fatalf("seed job %s: %v", externalID, err)
	}

	row := db.QueryRow(ctx, `SELECT id FROM jobs WHERE source_id = $1 AND external_job_id = $2 LIMIT 1`, sourceID, externalID)
	var got uuid.UUID
	if err := row.Scan(&got); err != nil {
		t.Fatalf("seed job select %s: %v", externalID, err)
	}
	return got
}

func ensureJobSkill(t *testing.T, ctx context.Context, db database.DB, jobID uuid.UUID, skillName string) {
	t.Helper()

	_, err := db.Exec(ctx,
		`INSERT INTO job_skills (id, job_id, skill_name) VALUES ($1,$2,$3)
		 ON CONFLICT (job_id, skill_name) DO NOTHING`,
		uuid.New(), jobID, skillName,
	)
	if err != nil {
		t.Fatalf("seed job_skill: %v", err)
	}
}

func ensureUser(t *testing.T, ctx context.Context, db database.DB, email, password string) uuid.UUID {
	t.Helper()

	pwHash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		t.Fatalf("seed user: bcrypt error: %v", err)
	}

	_, err = db.Exec(ctx,
		`INSERT INTO users (id, email, password_hash) VALUES ($1,$2,$3)
		 ON CONFLICT (email) DO UPDATE SET password_hash = EXCLUDED.password_hash`,
		uuid.New(), email, string(pwHash),
	)
	if err != nil {
		t.Fatalf("seed user insert: %v", err)
	}

	row := db.QueryRow(ctx, `SELECT id FROM users WHERE email = $1 LIMIT 1`, email)
	var got uuid.UUID
	if err := row.Scan(&got); err != nil {
		t.Fatalf("seed user select: %v", err)
	}
	return got
}

func ensureUserSkill(t *testing.T, ctx context.Context, db database.DB, userID, skillID uuid.UUID, kind string) {
	t.Helper()

	_, err := db.Exec(ctx,
		`INSERT INTO user_skills (id, user_id, skill_id, kind) VALUES ($1,$2,$3,$4)
		 ON CONFLICT (user_id, skill_id) DO UPDATE SET kind = EXCLUDED.kind`,
		uuid.New(), userID, skillID, kind,
	)
	if err != nil {
		t.Fatalf("seed user_skill: %v", err)
	}
}

func stringsOrDefault(v, def string) string {
	if v != "" {
		return v
	}
	return def
}
