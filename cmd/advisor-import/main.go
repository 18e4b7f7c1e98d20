package main

import (
	"context"
	"os"

	"github.com/boilerplan/boilerplan/config"
	"github.com/boilerplan/boilerplan/db"
	"github.com/boilerplan/boilerplan/importer"
	"github.com/boilerplan/boilerplan/logger"
)

// advisor-import loads exported catalog HTML pages into the store:
//
//	advisor-import catalog_cs_core.html catalog_cs_tracks.html
func main() {
	cfg, err := config.Load(os.Getenv("ADVISOR_CONFIG"))
	if err != nil {
		panic(err)
	}

	log, err := logger.New(cfg.Mode)
	if err != nil {
		panic(err)
	}
	defer log.Sync()

	if len(os.Args) < 2 {
		log.Fatal("usage: advisor-import <catalog.html> [more.html...]")
	}

	ctx := context.Background()

	database, err := db.Connect(ctx, cfg.DatabaseConnectionString)
	if err != nil {
		log.Fatal("catalog store connection failed", "error", err)
	}
	defer database.Close()

	if err := database.CreateSchema(ctx); err != nil {
		log.Fatal("schema creation failed", "error", err)
	}
	if err := database.InsertMajor(ctx, db.Major{Id: cfg.MajorId, Name: cfg.MajorId, Active: true}); err != nil {
		log.Fatal("major upsert failed", "error", err)
	}

	imp := importer.New(log, cfg.MajorId)

	// Courses across all pages go in before any prereq rows so the
	// foreign keys hold regardless of page order.
	var pages []importer.CatalogData
	for _, path := range os.Args[1:] {
		file, err := os.Open(path)
		if err != nil {
			log.Fatal("unable to open catalog page", "path", path, "error", err)
		}
		data, err := imp.ParseCatalogPage(file)
		file.Close()
		if err != nil {
			log.Fatal("unable to parse catalog page", "path", path, "error", err)
		}
		log.Info("parsed catalog page", "path", path, "courses", len(data.Courses), "prereqs", len(data.Prereqs), "offerings", len(data.Offerings))
		pages = append(pages, data)
	}

	for _, data := range pages {
		if err := database.InsertCourses(ctx, data.Courses); err != nil {
			log.Fatal("course insert failed", "error", err)
		}
	}
	for _, data := range pages {
		if err := database.InsertPrereqs(ctx, data.Prereqs); err != nil {
			log.Fatal("prereq insert failed", "error", err)
		}
		if err := database.InsertOfferings(ctx, data.Offerings); err != nil {
			log.Fatal("offering insert failed", "error", err)
		}
	}

	log.Info("catalog import complete", "major_id", cfg.MajorId, "pages", len(pages))
}
