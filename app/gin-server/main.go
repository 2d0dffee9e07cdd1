package main

import (
	"context"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/yoockh/mockview/config"
	"github.com/yoockh/mockview/internal/api/handlers"
	"github.com/yoockh/mockview/internal/api/middleware"
	"github.com/yoockh/mockview/internal/api/routes"
	"github.com/yoockh/mockview/internal/cache"
	"github.com/yoockh/mockview/internal/logger"
	"github.com/yoockh/mockview/internal/providers/coach"
	"github.com/yoockh/mockview/internal/providers/stt"
	"github.com/yoockh/mockview/internal/providers/tts"
	memoryrepo "github.com/yoockh/mockview/internal/repositories/memory"
	mongorepo "github.com/yoockh/mockview/internal/repositories/mongo"
	pgrepo "github.com/yoockh/mockview/internal/repositories/postgres"
	"github.com/yoockh/mockview/internal/services"
	"github.com/yoockh/mockview/internal/storage"
)

func main() {
	_ = godotenv.Load()

	ctx := context.Background()
	log := logger.New()

	// Session store: Mongo when configured, in-memory otherwise.
	var sessions mongorepo.InterviewRepository
	if os.Getenv("MONGO_URI") != "" {
		if err := config.InitMongo(); err != nil {
			log.WithError(err).Fatal("mongo init failed")
		}
		if err := config.EnsureMongoIndexes(); err != nil {
			log.WithError(err).Fatal("mongo index bootstrap failed")
		}
		sessions = mongorepo.NewInterviewRepo(config.MongoDatabase())
		log.Info("mongo session store ready")
	} else {
		sessions = memoryrepo.NewInterviewRepo()
		log.Warn("MONGO_URI not set; using in-memory session store")
	}

	// Coaching oracle (required).
	project := os.Getenv("VERTEX_PROJECT_ID")
	if project == "" {
		log.Fatal("VERTEX_PROJECT_ID environment variable is not set")
	}
	location := os.Getenv("VERTEX_LOCATION")
	if location == "" {
		location = "us-central1"
	}
	coachProvider, err := coach.NewVertexGemini(ctx, project, location, os.Getenv("VERTEX_MODEL"))
	if err != nil {
		log.WithError(err).Fatal("vertex init failed")
	}
	defer coachProvider.Close()

	deps := services.InterviewServiceDeps{
		Sessions: sessions,
		Coach:    coachProvider,
		Logger:   log,
	}

	// Transcription oracle (audio answers).
	if os.Getenv("ENABLE_STT") == "true" {
		sp, err := stt.NewGoogleSpeech(ctx)
		if err != nil {
			log.WithError(err).Fatal("speech init failed")
		}
		defer sp.Close()
		deps.STT = sp
	}

	// Answer audio archive.
	if bucket := os.Getenv("AUDIO_BUCKET"); bucket != "" {
		up, err := storage.NewGCSUploader(ctx, bucket)
		if err != nil {
			log.WithError(err).Fatal("gcs init failed")
		}
		defer up.Close()
		deps.Audio = up
	}

	// Result cache.
	if os.Getenv("REDIS_ADDR") != "" || os.Getenv("REDIS_URI") != "" || os.Getenv("REDIS_URL") != "" {
		if err := config.InitRedis(); err != nil {
			log.WithError(err).Fatal("redis init failed")
		}
		deps.Cache = cache.NewRedisCache(config.RedisClient)
		log.Info("redis result cache ready")
	}

	// Transcript audit log.
	var transcriptHandler *handlers.TranscriptHandler
	if os.Getenv("POSTGRES_URI") != "" {
		if err := config.InitPostgres(); err != nil {
			log.WithError(err).Fatal("postgres init failed")
		}
		transcripts := services.NewTranscriptService(pgrepo.NewTranscriptRepo(config.PostgresDB))
		deps.Transcripts = transcripts
		transcriptHandler = handlers.NewTranscriptHandler(transcripts)
		log.Info("postgres transcript log ready")
	}

	svc, err := services.NewInterviewService(deps)
	if err != nil {
		log.WithError(err).Fatal("service wiring failed")
	}

	// Spoken prompts.
	var speech tts.Provider
	if os.Getenv("ENABLE_TTS") == "true" {
		tp, err := tts.NewGoogleTTS(ctx)
		if err != nil {
			log.WithError(err).Fatal("tts init failed")
		}
		defer tp.Close()
		speech = tp
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger(log))

	routes.RegisterRoutes(r, routes.Deps{
		Interview:  handlers.NewInterviewHandler(svc, speech, log),
		Transcript: transcriptHandler,
	})

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	log.WithField("port", port).Info("starting server")
	if err := r.Run(":" + port); err != nil {
		log.WithError(err).Fatal("server exited")
	}
}
