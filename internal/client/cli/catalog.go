package cli

import (
	"context"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/msivanov/materialhub/internal/client/models"
	"github.com/msivanov/materialhub/internal/formatx"
)

// List fetches and prints one catalog page. An optional page number
// argument selects the page; without it the first page is shown.
func (a *App) List(ctx context.Context, args []string) error {
	page := 1
	if len(args) > 0 {
		p, err := strconv.Atoi(args[0])
		if err != nil || p < 1 {
			printlnFn("Usage: list [page]")
			return nil
		}
		page = p
	}

	if err := a.materials.List(ctx, page); err != nil {
		log.Printf("List unsuccessful: %s", a.materials.Error())
		return err
	}

	a.printCatalog()
	return nil
}

// Search replaces the search filter and reloads the first page.
func (a *App) Search(ctx context.Context, args []string) error {
	if len(args) == 0 {
		printlnFn("Usage: search <terms>")
		return nil
	}

	a.materials.UpdateFilters(models.Filters{Search: strings.Join(args, " ")})
	return a.List(ctx, nil)
}

// Filter prompts for catalog filters interactively. Empty answers leave
// the corresponding filter unchanged; "clear" resets everything.
func (a *App) Filter(ctx context.Context) error {
	category, err := getSimpleText(a.reader, "Category slug (empty to keep, 'clear' to reset all)", os.Stdout)
	if err != nil {
		return err
	}
	if category == "clear" {
		a.materials.ClearFilters()
		return a.List(ctx, nil)
	}

	materialType, err := getSimpleText(a.reader, "Material type (image, vector, video, audio, template, font, other)", os.Stdout)
	if err != nil {
		return err
	}

	tags, err := getSimpleText(a.reader, "Tags (comma separated)", os.Stdout)
	if err != nil {
		return err
	}

	f := models.Filters{Category: category, MaterialType: materialType}
	if tags != "" {
		f.Tags = strings.Split(tags, ",")
	}
	a.materials.UpdateFilters(f)
	return a.List(ctx, nil)
}

// Detail fetches one material and prints its full card.
func (a *App) Detail(ctx context.Context, args []string) error {
	id, ok := parseID(args, "show")
	if !ok {
		return nil
	}

	m, err := a.materials.FetchDetail(ctx, id)
	if err != nil {
		log.Printf("Show unsuccessful: %s", a.materials.Error())
		return err
	}

	a.printMaterial(m)
	return nil
}

// Favorite toggles the favorite flag of a material. The flag flips
// immediately; a server failure is reported afterwards.
func (a *App) Favorite(ctx context.Context, args []string) error {
	id, ok := parseID(args, "favorite")
	if !ok {
		return nil
	}
	if !a.isLoggedIn() {
		printlnFn("Please log in first")
		return nil
	}

	if err := a.materials.ToggleFavorite(ctx, id); err != nil {
		log.Printf("Favorite unsuccessful: %s", a.materials.Error())
		return err
	}
	return nil
}

// Download records a download and prints the returned URL.
func (a *App) Download(ctx context.Context, args []string) error {
	id, ok := parseID(args, "download")
	if !ok {
		return nil
	}
	if !a.isLoggedIn() {
		printlnFn("Please log in first")
		return nil
	}

	resp, err := a.materials.RecordDownload(ctx, id)
	if err != nil {
		log.Printf("Download unsuccessful: %s", a.materials.Error())
		return err
	}

	fmt.Printf("Download URL: %s\n", resp.DownloadURL)
	return nil
}

func parseID(args []string, usage string) (int64, bool) {
	if len(args) == 0 {
		printlnFn(fmt.Sprintf("Usage: %s <id>", usage))
		return 0, false
	}
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil || id <= 0 {
		printlnFn(fmt.Sprintf("Usage: %s <id>", usage))
		return 0, false
	}
	return id, true
}

func (a *App) printCatalog() {
	ms := a.materials.Materials()
	if len(ms) == 0 {
		printlnFn("No materials found")
		return
	}

	for _, m := range ms {
		fav := " "
		if m.IsFavorite {
			fav = "*"
		}
		fmt.Printf("%s %6d  %-40s %-8s %8s  %d downloads\n",
			fav, m.ID, formatx.Truncate(m.Title, 40, "..."), m.MaterialType,
			formatx.FileSize(m.FileSize), m.DownloadCount)
	}

	p := a.materials.Pagination()
	pages := (p.Total + int64(p.PageSize) - 1) / int64(p.PageSize)
	fmt.Printf("Page %d of %d (%d materials)\n", p.Current, pages, p.Total)
}

func (a *App) printMaterial(m *models.Material) {
	fmt.Printf("#%d %s\n", m.ID, m.Title)
	if m.Description != "" {
		fmt.Println(m.Description)
	}
	fmt.Printf("Type: %s  License: %s  Size: %s\n", m.MaterialType, m.LicenseType, formatx.FileSize(m.FileSize))
	if m.Category != nil {
		fmt.Printf("Category: %s\n", m.Category.Name)
	}
	if len(m.Tags) > 0 {
		names := make([]string, 0, len(m.Tags))
		for _, t := range m.Tags {
			names = append(names, t.Name)
		}
		fmt.Printf("Tags: %s\n", strings.Join(names, ", "))
	}
	fmt.Printf("Views: %d  Downloads: %d  Favorites: %d\n", m.ViewCount, m.DownloadCount, m.FavoriteCount)
	fmt.Printf("Published: %s\n", formatx.Date(m.CreatedAt, "YYYY-MM-DD"))
}
