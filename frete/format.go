// formatação da linha de saída: "policy:prazo, total" ou "policy:-, -".
// O total sai sempre com duas casas (104.79, 50.00).

package frete

import (
	"strconv"

	"axado-frete/frete/domain"
)

func FormatQuote(q domain.Quote) string {
	if !q.OK {
		return string(q.Policy) + ":-, -"
	}
	return string(q.Policy) + ":" + strconv.Itoa(q.DeadlineDays) + ", " + q.Total.StringFixed(2)
}
