package router

import (
	"database/sql"
	"net/http"

	"adoptme/internal/adapters/storage/files"
	mem "adoptme/internal/adapters/storage/memory"
	pg "adoptme/internal/adapters/storage/postgres"
	"adoptme/internal/auth"
	"adoptme/internal/config"
	"adoptme/internal/domain/adoptions"
	"adoptme/internal/domain/mocks"
	"adoptme/internal/domain/pets"
	"adoptme/internal/domain/sessions"
	"adoptme/internal/domain/users"
	"adoptme/internal/middleware"
	"adoptme/internal/platform/logger"
	"adoptme/internal/platform/web"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
)

type Options struct {
	Cfg config.Config
	Log logger.Logger

	// Opcional: si viene, usa Postgres. Si no, repos in-memory.
	DB *sql.DB
}

func New(opts Options) (http.Handler, error) {
	log := opts.Log
	if log == nil {
		log = logger.Nop()
	}

	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)
	r.Use(middleware.RequestLogger(log))

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	var (
		userRepo     users.Repository
		petRepo      pets.Repository
		adoptionRepo adoptions.Repository
	)

	if opts.DB != nil {
		userRepo = pg.NewUsersRepo(opts.DB)
		petRepo = pg.NewPetsRepo(opts.DB)
		adoptionRepo = pg.NewAdoptionsRepo(opts.DB)
	} else {
		userRepo = mem.NewUserRepo()
		petRepo = mem.NewPetRepo()
		adoptionRepo = mem.NewAdoptionRepo()
	}

	uploads, err := files.New(opts.Cfg.UploadDir)
	if err != nil {
		return nil, err
	}

	tokens := auth.NewTokenIssuer(opts.Cfg.JWTSecret, opts.Cfg.CookieMaxAge)

	gen, err := mocks.NewGenerator()
	if err != nil {
		return nil, err
	}

	// Services por módulo
	usersSvc := users.NewService(userRepo, log)
	petsSvc := pets.NewService(petRepo)
	adoptionsSvc := adoptions.NewService(adoptionRepo, userRepo, petRepo, log)
	sessionsSvc := sessions.NewService(userRepo, tokens, log)

	// Rutas por módulo
	users.RegisterRoutes(r, usersSvc, uploads)
	pets.RegisterRoutes(r, petsSvc, uploads)
	adoptions.RegisterRoutes(r, adoptionsSvc)
	sessions.RegisterRoutes(r, sessionsSvc, sessions.CookieConfig{
		Name:   opts.Cfg.CookieName,
		MaxAge: opts.Cfg.CookieMaxAge,
	})
	mocks.RegisterRoutes(r, gen, userRepo, petRepo)

	// Ruta de prueba del logger: emite una línea por cada nivel.
	r.Get("/api/loggertest", loggerTestHandler(log))

	return r, nil
}

func loggerTestHandler(log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		fields := map[string]any{"source": "loggertest"}
		log.Debug("debug test", fields)
		log.HTTP("http test", fields)
		log.Info("info test", fields)
		log.Warn("warning test", fields)
		log.Error("error test", fields)
		log.Fatal("fatal test", fields)
		web.OKMessage(w, "Logs generados exitosamente. Revisa la consola (desarrollo) o errors.log (producción)")
	}
}
