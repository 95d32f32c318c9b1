package output

import (
	"os"

	"github.com/climatelens/risk-analytics/internal/domain"
	"gopkg.in/yaml.v3"
)

// GenerateReport renders report in the named format and writes it to dir.
// "all" writes the verbose console report, the detailed CSV and the HTML page.
func GenerateReport(report *domain.Report, format, dir string) ([]string, error) {
	if NormalizeFormatName(format) == "all" {
		var files []string
		for _, name := range []string{"console", "detailed-csv", "html"} {
			file, err := WriteFormatted(GetFormatterByName(name), report, dir, FileExtension(name))
			if err != nil {
				return files, err
			}
			files = append(files, file)
		}
		return files, nil
	}
	f, err := LookupFormatter(format)
	if err != nil {
		return nil, err
	}
	file, err := WriteFormatted(f, report, dir, FileExtension(format))
	if err != nil {
		return nil, err
	}
	return []string{file}, nil
}

// SaveConfiguration writes a configuration as YAML
func SaveConfiguration(config *domain.Configuration, filename string) error {
	b, err := yaml.Marshal(config)
	if err != nil {
		return err
	}
	return os.WriteFile(filename, b, 0644)
}
