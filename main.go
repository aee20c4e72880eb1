package main

import (
	"context"
	"log"

	"github.com/gin-gonic/gin"
	"school-dashboard-go/access"
	"school-dashboard-go/config"
	"school-dashboard-go/db"
	"school-dashboard-go/handlers"
	"school-dashboard-go/models"
	"school-dashboard-go/store"
)

func main() {
	cfg, err := config.Load(".env")
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	ctx := context.Background()
	kv, closeKV, err := openSubstrate(ctx, cfg)
	if err != nil {
		log.Fatalf("Failed to open %s storage: %v", cfg.Storage, err)
	}
	defer closeKV()

	creds, err := access.NewDemoCredentials(cfg.BcryptCost)
	if err != nil {
		log.Fatalf("Failed to prepare demo accounts: %v", err)
	}

	s, err := store.Open(ctx, kv, creds)
	if err != nil {
		log.Fatalf("Failed to load school data: %v", err)
	}

	if cfg.Seed {
		checkAndSeedData(ctx, s)
	}

	apiHandler := handlers.NewAPIHandler(s, cfg.TrendDays)

	// Initialize Gin router
	router := gin.Default()
	handlers.RegisterRoutes(router.Group("/api"), apiHandler)

	log.Printf("Starting server on %s (storage: %s)", cfg.Addr(), cfg.Storage)
	if err := router.Run(cfg.Addr()); err != nil {
		log.Fatalf("Failed to run server: %v", err)
	}
}

// openSubstrate connects the configured key-value backend. The returned
// func releases it.
func openSubstrate(ctx context.Context, cfg *config.Config) (db.KV, func(), error) {
	switch cfg.Storage {
	case config.DriverPostgres:
		pg, err := db.OpenPostgres(ctx, cfg.PostgresURL, cfg.PostgresMaxConns)
		if err != nil {
			return nil, nil, err
		}
		return pg, pg.Close, nil
	case config.DriverMemory:
		log.Println("Using in-memory storage; data is lost on exit")
		return db.NewMemoryKV(), func() {}, nil
	default:
		client, err := db.InitializeRedisClient(ctx, db.RedisOptions{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		if err != nil {
			return nil, nil, err
		}
		closeFn := func() {
			if err := client.Close(); err != nil {
				log.Printf("Error closing Redis client: %v", err)
			}
		}
		return db.NewRedisService(client, cfg.RedisPrefix), closeFn, nil
	}
}

// checkAndSeedData adds demo data when the store has no students yet.
func checkAndSeedData(ctx context.Context, s *store.Store) {
	if n := len(s.State().Students); n > 0 {
		log.Printf("Found %d existing students. Skipping demo data.", n)
		return
	}
	log.Println("No students found. Adding demo data...")
	seedInitialData(ctx, s)
}

// seedInitialData adds a few students, teachers and grades. Errors are
// logged and do not stop the rest of the seed.
func seedInitialData(ctx context.Context, s *store.Store) {
	students := []store.StudentInput{
		{Name: "أحمد محمد", Age: 8, Class: models.ClassFirst, Phone: "501234567"},
		{Name: "فاطمة علي", Age: 9, Class: models.ClassSecond, Phone: "502345678"},
		{Name: "خالد عبدالله", Age: 10, Class: models.ClassThird, Phone: "503456789"},
		{Name: "نورة سعد", Age: 11, Class: models.ClassFourth, Phone: "504567890"},
	}
	var added []models.Student
	for _, in := range students {
		st, err := s.AddStudent(ctx, in)
		if err != nil {
			log.Printf("Error adding demo student %s: %v", in.Name, err)
			continue
		}
		added = append(added, st)
	}

	teachers := []store.TeacherInput{
		{Name: "سارة أحمد", Subject: "الرياضيات", Phone: "505678901", Email: "sara@school.sa"},
		{Name: "محمد حسن", Subject: "العلوم", Phone: "506789012", Email: "mohammed@school.sa"},
	}
	for _, in := range teachers {
		if _, err := s.AddTeacher(ctx, in); err != nil {
			log.Printf("Error adding demo teacher %s: %v", in.Name, err)
		}
	}

	scores := []float64{95, 82, 74, 61}
	for i, st := range added {
		score := scores[i%len(scores)]
		in := store.GradeInput{StudentID: st.ID, Subject: "الرياضيات", Grade: &score}
		if _, err := s.AddGrade(ctx, in); err != nil {
			log.Printf("Error adding demo grade for %s: %v", st.Name, err)
		}
	}

	log.Println("Demo data added.")
}
