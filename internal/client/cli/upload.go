package cli

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/msivanov/materialhub/internal/client/models"
)

// Upload prompts for material metadata and uploads the given file, drawing
// a live progress bar while the transfer runs.
func (a *App) Upload(ctx context.Context, args []string) error {
	if len(args) == 0 {
		printlnFn("Usage: upload <file>")
		return nil
	}
	if !a.isLoggedIn() {
		printlnFn("Please log in first")
		return nil
	}

	meta, err := a.promptMaterialMeta(filepath.Base(args[0]))
	if err != nil {
		return err
	}

	bar := newProgressBar(os.Stdout, "Uploading")
	m, err := a.uploads.Upload(ctx, args[0], *meta, bar.Update)
	if err != nil {
		fmt.Println()
		log.Printf("Upload unsuccessful: %s", err.Error())
		return err
	}
	bar.Finish()

	log.Printf("Uploaded #%d %s", m.ID, m.Title)
	return nil
}

// Enqueue adds a file to the local upload queue without transferring it.
func (a *App) Enqueue(ctx context.Context, args []string) error {
	if len(args) == 0 {
		printlnFn("Usage: queue <file>")
		return nil
	}
	if !a.isLoggedIn() {
		printlnFn("Please log in first")
		return nil
	}

	if _, err := os.Stat(args[0]); err != nil {
		log.Printf("Cannot queue %s: %s", args[0], err.Error())
		return err
	}

	meta, err := a.promptMaterialMeta(filepath.Base(args[0]))
	if err != nil {
		return err
	}

	job := a.uploads.Enqueue(args[0], *meta)
	log.Printf("Queued %s as job %s", job.Path, job.ID)
	return nil
}

// ProcessQueue uploads every queued job, retrying transient failures, and
// prints a per-job summary afterwards.
func (a *App) ProcessQueue(ctx context.Context) error {
	if !a.isLoggedIn() {
		printlnFn("Please log in first")
		return nil
	}
	if len(a.uploads.Queue()) == 0 {
		printlnFn("Upload queue is empty")
		return nil
	}

	err := a.uploads.ProcessQueue(ctx)

	for _, job := range a.uploads.Queue() {
		status := string(job.Status)
		if job.Err != "" {
			status = fmt.Sprintf("%s (%s)", status, job.Err)
		}
		fmt.Printf("%-30s %s\n", filepath.Base(job.Path), status)
	}

	if err != nil {
		log.Printf("Some uploads failed")
		return err
	}
	a.uploads.ClearQueue()
	log.Printf("Queue processed")
	return nil
}

// promptMaterialMeta collects the metadata fields of a material create.
// The title defaults to the file name.
func (a *App) promptMaterialMeta(defaultTitle string) (*models.CreateMaterial, error) {
	title, err := getSimpleText(a.reader, fmt.Sprintf("Title (default %q)", defaultTitle), os.Stdout)
	if err != nil {
		return nil, err
	}
	if title == "" {
		title = defaultTitle
	}

	description, err := GetMultiline(a.reader, "Description", os.Stdout)
	if err != nil {
		return nil, err
	}

	materialType, err := getSimpleText(a.reader, "Material type (image, vector, video, audio, template, font, other)", os.Stdout)
	if err != nil {
		return nil, err
	}
	if materialType == "" {
		materialType = string(models.MaterialTypeOther)
	}

	category, err := getSimpleText(a.reader, "Category slug", os.Stdout)
	if err != nil {
		return nil, err
	}

	tags, err := getSimpleText(a.reader, "Tags (comma separated)", os.Stdout)
	if err != nil {
		return nil, err
	}

	meta := &models.CreateMaterial{
		Title:        title,
		Description:  description,
		MaterialType: models.MaterialType(materialType),
		Category:     category,
		LicenseType:  models.LicenseFree,
	}
	if tags != "" {
		meta.Tags = strings.Split(tags, ",")
	}
	return meta, nil
}
