package translator

import "github.com/heartmarshall/wordnet-translator/internal/domain"

const bytesPerMB = 1024 * 1024

// EstimateCost returns the advisory price of translating tasks with t:
// the byte size of every generated sample, in MiB, times pricePerMB.
func EstimateCost(t Translator, tasks []domain.Task, pricePerMB float64) float64 {
	total := 0
	for _, task := range tasks {
		total += t.GenerateSamples(task).TotalBytes()
	}
	return float64(total) / bytesPerMB * pricePerMB
}
