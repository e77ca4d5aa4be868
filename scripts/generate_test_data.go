// Генератор тестовых CSV файлов с контактами для ручной проверки импорта.
// Запуск: go run scripts/generate_test_data.go
package main

import (
	"encoding/csv"
	"fmt"
	"log"
	"math/rand"
	"os"
	"path/filepath"
	"strings"

	"github.com/brianvoe/gofakeit/v6"
)

func main() {
	gofakeit.Seed(0)
	rng := rand.New(rand.NewSource(0))

	sizes := []struct {
		name string
		size int
	}{
		{"100", 100},
		{"1K", 1000},
		{"10K", 10000},
	}

	dataDir := filepath.Join("tests", "data")
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		log.Fatalf("Failed to create data directory: %v", err)
	}

	for _, size := range sizes {
		fmt.Printf("Generating %s records...\n", size.name)

		path := filepath.Join(dataDir, fmt.Sprintf("contacts_%s.csv", size.name))
		if err := writeContactsCSV(path, size.size, rng); err != nil {
			log.Fatalf("Failed to write %s: %v", path, err)
		}

		fmt.Printf("Wrote %s\n", path)
	}
}

// writeContactsCSV пишет CSV с заголовком и size записями.
// Примерно каждая десятая запись — зашумленный дубликат предыдущей
// (другой регистр email, другое форматирование телефона).
func writeContactsCSV(path string, size int, rng *rand.Rand) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	header := []string{"Contact Name", "Company", "Email", "Phone", "Address", "City", "State", "Zip", "Country"}
	if err := w.Write(header); err != nil {
		return err
	}

	var prev []string
	for i := 0; i < size; i++ {
		var row []string
		if prev != nil && rng.Intn(10) == 0 {
			row = noisyDuplicate(prev, rng)
		} else {
			row = []string{
				gofakeit.Name(),
				gofakeit.Company(),
				strings.ToLower(gofakeit.Email()),
				gofakeit.Phone(),
				gofakeit.Street(),
				gofakeit.City(),
				gofakeit.StateAbr(),
				gofakeit.Zip(),
				"US",
			}
		}
		if err := w.Write(row); err != nil {
			return err
		}
		prev = row
	}

	return w.Error()
}

func noisyDuplicate(row []string, rng *rand.Rand) []string {
	dup := make([]string, len(row))
	copy(dup, row)

	dup[2] = strings.ToUpper(dup[2])

	digits := strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, dup[3])
	if len(digits) == 10 {
		switch rng.Intn(3) {
		case 0:
			dup[3] = fmt.Sprintf("%s.%s.%s", digits[:3], digits[3:6], digits[6:])
		case 1:
			dup[3] = fmt.Sprintf("%s-%s-%s", digits[:3], digits[3:6], digits[6:])
		default:
			dup[3] = digits
		}
	}

	return dup
}
