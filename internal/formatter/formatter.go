// package formatter provides functions to export album series coverage
// reports to various formats (CSV, Markdown, plain text)
package formatter

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/desertthunder/packsmith/internal/models"
	"github.com/desertthunder/packsmith/internal/reconcile"
	"github.com/desertthunder/packsmith/internal/shared"
)

// Report bundles an album series with its current entry projection for export.
type Report struct {
	Series  *models.AlbumSeries
	Entries []models.TracklistEntry
}

// Coverage returns the report's coverage percentage.
func (r *Report) Coverage() int {
	return reconcile.Coverage(r.Entries)
}

// ExportToCSV converts a Report to CSV format with columns: Disc, Track, Title, Status, PreExisting, Irrelevant, SongID
func ExportToCSV(report *Report) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	headers := []string{"Disc", "Track", "Title", "Status", "PreExisting", "Irrelevant", "SongID"}
	if err := writer.Write(headers); err != nil {
		return nil, fmt.Errorf("failed to write CSV headers: %w", err)
	}

	for _, entry := range report.Entries {
		record := []string{
			strconv.Itoa(entry.Disc()),
			strconv.Itoa(entry.TrackNumber),
			entry.TitleClean,
			reconcile.Classify(entry),
			strconv.FormatBool(entry.PreExisting),
			strconv.FormatBool(entry.Irrelevant),
			entry.SongID,
		}
		if err := writer.Write(record); err != nil {
			return nil, fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("CSV writer error: %w", err)
	}

	return buf.Bytes(), nil
}

// ExportToMarkdown converts a Report to Markdown format with optional cover image
func ExportToMarkdown(report *Report, imageFilename string) ([]byte, error) {
	var buf bytes.Buffer

	buf.WriteString(fmt.Sprintf("# %s - %s\n\n", report.Series.ArtistName, report.Series.AlbumName))

	if imageFilename != "" {
		buf.WriteString(fmt.Sprintf("![Cover](%s)\n\n", imageFilename))
	}

	if report.Series.Description != "" {
		buf.WriteString(fmt.Sprintf("**Description**: %s\n\n", report.Series.Description))
	}

	buf.WriteString(fmt.Sprintf("**Series**: #%d\n", report.Series.Sequence))
	buf.WriteString(fmt.Sprintf("**Tracks**: %d\n", len(report.Entries)))
	buf.WriteString(fmt.Sprintf("**Coverage**: %d%%\n\n", report.Coverage()))

	buf.WriteString("## Tracklist\n\n")
	lastDisc := 0
	for _, entry := range report.Entries {
		if entry.Disc() != lastDisc {
			lastDisc = entry.Disc()
			buf.WriteString(fmt.Sprintf("### Disc %d\n\n", lastDisc))
		}

		marker := " "
		if entry.Irrelevant {
			marker = "-"
		}
		buf.WriteString(fmt.Sprintf("%d. [%s] %s - %s\n", entry.TrackNumber, marker, entry.TitleClean, reconcile.Classify(entry)))
	}

	return buf.Bytes(), nil
}

// ExportToText converts a Report to plain text format
func ExportToText(report *Report) ([]byte, error) {
	var buf bytes.Buffer

	buf.WriteString(fmt.Sprintf("Album Series: %s - %s (#%d)\n", report.Series.ArtistName, report.Series.AlbumName, report.Series.Sequence))
	if report.Series.Description != "" {
		buf.WriteString(fmt.Sprintf("Description: %s\n", report.Series.Description))
	}
	buf.WriteString(fmt.Sprintf("Coverage: %d%% of %d tracks\n\n", report.Coverage(), len(report.Entries)))

	for _, entry := range report.Entries {
		buf.WriteString(fmt.Sprintf("%d.%02d %s [%s]\n", entry.Disc(), entry.TrackNumber, entry.TitleClean, reconcile.Classify(entry)))
	}

	return buf.Bytes(), nil
}

// DownloadImage downloads an image from the given URL and returns the raw bytes
func DownloadImage(url string) ([]byte, error) {
	if url == "" {
		return nil, fmt.Errorf("empty URL provided")
	}

	client := &http.Client{
		Timeout: 30 * time.Second,
	}

	resp, err := client.Get(url)
	if err != nil {
		return nil, fmt.Errorf("failed to download image: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("failed to download image: status %d", resp.StatusCode)
	}

	imageData, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read image data: %w", err)
	}

	return imageData, nil
}

// ToMetadataJSON generates a JSON representation of series metadata (without entries)
func ToMetadataJSON(series *models.AlbumSeries) ([]byte, error) {
	return shared.MarshalJSON(series, true)
}

// CSVExportResult contains the paths of files created by WriteCSVExport
type CSVExportResult struct {
	EntriesFile  string
	MetadataFile string
}

// WriteCSVExport exports a coverage report to CSV format with accompanying metadata JSON file.
//
// Defaults to the series ID as the base filename & creates {base}_tracklist.csv and {base}_metadata.json
func WriteCSVExport(report *Report, baseFilepath string) (*CSVExportResult, error) {
	if baseFilepath == "" {
		baseFilepath = report.Series.ID
	}

	csvData, err := ExportToCSV(report)
	if err != nil {
		return nil, fmt.Errorf("failed to generate CSV: %w", err)
	}

	entriesFile := baseFilepath + "_tracklist.csv"
	if err := os.WriteFile(entriesFile, csvData, 0644); err != nil {
		return nil, fmt.Errorf("failed to write CSV file: %w", err)
	}

	metadataJSON, err := ToMetadataJSON(report.Series)
	if err != nil {
		return nil, fmt.Errorf("failed to generate metadata JSON: %w", err)
	}

	metadataFile := baseFilepath + "_metadata.json"
	if err := os.WriteFile(metadataFile, metadataJSON, 0644); err != nil {
		return nil, fmt.Errorf("failed to write metadata file: %w", err)
	}

	return &CSVExportResult{
		EntriesFile:  entriesFile,
		MetadataFile: metadataFile,
	}, nil
}

// MarkdownExportResult contains information about files created by WriteMarkdownExport
type MarkdownExportResult struct {
	Directory  string
	Files      []string
	CoverImage string
}

// WriteMarkdownExport exports a coverage report to Markdown format in a dedicated directory.
//
// Directory name defaults to the series ID.
// The imageURL parameter is optional - if provided, attempts to download the cover image.
// Creates a directory structure: {dir}/README.md and optionally {dir}/cover.jpg
func WriteMarkdownExport(report *Report, outputDir string, imageURL string) (*MarkdownExportResult, error) {
	if outputDir == "" {
		outputDir = report.Series.ID
	}

	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create directory: %w", err)
	}

	result := &MarkdownExportResult{
		Directory: outputDir,
		Files:     []string{},
	}

	var coverImageFilename string
	if imageURL != "" {
		imageData, err := DownloadImage(imageURL)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: failed to download cover image: %v\n", err)
		} else {
			coverImageFilename = "cover.jpg"
			coverImagePath := fmt.Sprintf("%s/%s", outputDir, coverImageFilename)
			if err := os.WriteFile(coverImagePath, imageData, 0644); err != nil {
				fmt.Fprintf(os.Stderr, "Warning: failed to save cover image: %v\n", err)
				coverImageFilename = ""
			} else {
				result.CoverImage = coverImagePath
				result.Files = append(result.Files, coverImagePath)
			}
		}
	}

	mdData, err := ExportToMarkdown(report, coverImageFilename)
	if err != nil {
		return nil, fmt.Errorf("failed to generate Markdown: %w", err)
	}

	mdFile := fmt.Sprintf("%s/README.md", outputDir)
	if err := os.WriteFile(mdFile, mdData, 0644); err != nil {
		return nil, fmt.Errorf("failed to write Markdown file: %w", err)
	}

	result.Files = append(result.Files, mdFile)

	return result, nil
}

// WriteTextExport exports a coverage report to plain text format.
//
// Defaults to {series.ID}_tracklist.txt as the filename.
func WriteTextExport(report *Report, filepath string) (string, error) {
	if filepath == "" {
		filepath = fmt.Sprintf("%s_tracklist.txt", report.Series.ID)
	}

	textData, err := ExportToText(report)
	if err != nil {
		return "", fmt.Errorf("failed to generate text: %w", err)
	}

	if err := os.WriteFile(filepath, textData, 0644); err != nil {
		return "", fmt.Errorf("failed to write text file: %w", err)
	}

	return filepath, nil
}
