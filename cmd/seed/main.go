// Command seed populates the database with demo content for development.
package main

import (
	"flag"
	"log"

	"gamehaven/internal/config"
	"gamehaven/internal/database"
	"gamehaven/internal/seed"
)

func main() {
	opts := seed.DefaultOptions()
	flag.IntVar(&opts.NumUsers, "users", opts.NumUsers, "number of demo users to create")
	flag.IntVar(&opts.NumReviews, "reviews", opts.NumReviews, "number of reviews to create")
	flag.IntVar(&opts.NumBlogs, "blogs", opts.NumBlogs, "number of blog posts to create")
	flag.BoolVar(&opts.Clean, "clean", false, "delete existing content before seeding")
	flag.Parse()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	if cfg.Env == "production" || cfg.Env == "prod" {
		log.Fatal("Refusing to seed a production database")
	}

	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	if err := database.Migrate(db); err != nil {
		log.Fatalf("Migration failed: %v", err)
	}

	if err := seed.New(db, opts).Run(); err != nil {
		log.Fatalf("Seeding failed: %v", err)
	}
}
