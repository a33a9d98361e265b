package formatter

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/desertthunder/packsmith/internal/models"
)

func sampleReport() *Report {
	return &Report{
		Series: &models.AlbumSeries{
			ID:          "series123",
			Sequence:    7,
			ArtistName:  "Pink Floyd",
			AlbumName:   "Animals",
			Description: "A curated run through Animals",
		},
		Entries: []models.TracklistEntry{
			{DiscNumber: 1, TrackNumber: 1, TitleClean: "Pigs on the Wing, Pt. 1", Official: true, ExternalID: "t1"},
			{DiscNumber: 1, TrackNumber: 2, TitleClean: "Dogs", InPack: true, SongID: "s1", Status: "in_progress", ExternalID: "t2"},
			{DiscNumber: 1, TrackNumber: 3, TitleClean: "Sheep", ExternalID: "t3"},
			{DiscNumber: 2, TrackNumber: 1, TitleClean: "Pigs on the Wing, Pt. 2", Irrelevant: true, ExternalID: "t4"},
		},
	}
}

func TestExporters(t *testing.T) {
	t.Run("ExportToCSV", func(t *testing.T) {
		data, err := ExportToCSV(sampleReport())
		if err != nil {
			t.Fatalf("ExportToCSV failed: %v", err)
		}

		output := string(data)

		if !strings.Contains(output, "Disc,Track,Title,Status,PreExisting,Irrelevant,SongID") {
			t.Errorf("CSV missing headers, got: %s", output)
		}
		if !strings.Contains(output, "Official DLC") {
			t.Errorf("CSV missing classified status")
		}
		if !strings.Contains(output, "Dogs") {
			t.Errorf("CSV missing entry title")
		}
		if !strings.Contains(output, "s1") {
			t.Errorf("CSV missing linked song id")
		}
	})

	t.Run("ExportToMarkdown", func(t *testing.T) {
		t.Run("without cover image", func(t *testing.T) {
			data, err := ExportToMarkdown(sampleReport(), "")
			if err != nil {
				t.Fatalf("ExportToMarkdown failed: %v", err)
			}

			output := string(data)

			if !strings.Contains(output, "# Pink Floyd - Animals") {
				t.Errorf("Markdown missing title, got: %s", output)
			}
			if !strings.Contains(output, "**Series**: #7") {
				t.Errorf("Markdown missing series number")
			}
			if !strings.Contains(output, "### Disc 1") || !strings.Contains(output, "### Disc 2") {
				t.Errorf("Markdown missing disc headings")
			}
			if strings.Contains(output, "![Cover]") {
				t.Errorf("Markdown should not contain cover image")
			}
		})

		t.Run("with cover image", func(t *testing.T) {
			data, err := ExportToMarkdown(sampleReport(), "cover.jpg")
			if err != nil {
				t.Fatalf("ExportToMarkdown failed: %v", err)
			}

			if !strings.Contains(string(data), "![Cover](cover.jpg)") {
				t.Errorf("Markdown missing cover image reference")
			}
		})

		t.Run("coverage reflects irrelevant entries", func(t *testing.T) {
			// 3 relevant entries, 2 covered (official + in pack) = 67%.
			data, err := ExportToMarkdown(sampleReport(), "")
			if err != nil {
				t.Fatalf("ExportToMarkdown failed: %v", err)
			}

			if !strings.Contains(string(data), "**Coverage**: 67%") {
				t.Errorf("Markdown coverage wrong, got: %s", string(data))
			}
		})
	})

	t.Run("ExportToText", func(t *testing.T) {
		data, err := ExportToText(sampleReport())
		if err != nil {
			t.Fatalf("ExportToText failed: %v", err)
		}

		output := string(data)

		if !strings.Contains(output, "Album Series: Pink Floyd - Animals (#7)") {
			t.Errorf("text missing header, got: %s", output)
		}
		if !strings.Contains(output, "Sheep [Missing]") {
			t.Errorf("text missing classified entry")
		}
	})
}

func TestWriteExports(t *testing.T) {
	t.Run("WriteCSVExport", func(t *testing.T) {
		dir := t.TempDir()
		base := filepath.Join(dir, "animals")

		result, err := WriteCSVExport(sampleReport(), base)
		if err != nil {
			t.Fatalf("WriteCSVExport failed: %v", err)
		}

		if _, err := os.Stat(result.EntriesFile); err != nil {
			t.Errorf("tracklist file missing: %v", err)
		}
		if _, err := os.Stat(result.MetadataFile); err != nil {
			t.Errorf("metadata file missing: %v", err)
		}
	})

	t.Run("WriteTextExport", func(t *testing.T) {
		dir := t.TempDir()
		path := filepath.Join(dir, "animals.txt")

		written, err := WriteTextExport(sampleReport(), path)
		if err != nil {
			t.Fatalf("WriteTextExport failed: %v", err)
		}
		if written != path {
			t.Errorf("expected path %s, got %s", path, written)
		}

		content, err := os.ReadFile(path)
		if err != nil {
			t.Fatalf("failed to read export: %v", err)
		}
		if !strings.Contains(string(content), "Coverage:") {
			t.Errorf("export missing coverage line")
		}
	})

	t.Run("WriteMarkdownExport", func(t *testing.T) {
		dir := filepath.Join(t.TempDir(), "animals")

		result, err := WriteMarkdownExport(sampleReport(), dir, "")
		if err != nil {
			t.Fatalf("WriteMarkdownExport failed: %v", err)
		}

		if result.Directory != dir {
			t.Errorf("expected directory %s, got %s", dir, result.Directory)
		}
		if _, err := os.Stat(filepath.Join(dir, "README.md")); err != nil {
			t.Errorf("README.md missing: %v", err)
		}
	})
}
