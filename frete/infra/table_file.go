package infra

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"axado-frete/frete/domain"

	"github.com/shopspring/decimal"
)

// FileTables lê uma tabela de rotas e uma de preços de arquivos delimitados
// com cabeçalho. Os arquivos são relidos a cada chamada.
type FileTables struct {
	RoutesPath string
	PricesPath string
	Comma      rune
}

// NewTabelaFiles aponta para tabela/rotas.csv e tabela/preco_por_kg.csv.
func NewTabelaFiles(dir string) FileTables {
	return FileTables{
		RoutesPath: filepath.Join(dir, "rotas.csv"),
		PricesPath: filepath.Join(dir, "preco_por_kg.csv"),
		Comma:      ',',
	}
}

// NewTabela2Files aponta para tabela2/rotas.tsv e tabela2/preco_por_kg.tsv.
func NewTabela2Files(dir string) FileTables {
	return FileTables{
		RoutesPath: filepath.Join(dir, "rotas.tsv"),
		PricesPath: filepath.Join(dir, "preco_por_kg.tsv"),
		Comma:      '\t',
	}
}

// Routes implementa domain.RouteSource.
func (t FileTables) Routes(_ context.Context) ([]domain.Route, error) {
	var rows []domain.Route
	err := readFile(t.RoutesPath, func(r io.Reader) error {
		var err error
		rows, err = ReadRoutes(r, t.comma())
		return err
	})
	return rows, err
}

// LimitedRoutes implementa domain.LimitedRouteSource.
func (t FileTables) LimitedRoutes(_ context.Context) ([]domain.LimitedRoute, error) {
	var rows []domain.LimitedRoute
	err := readFile(t.RoutesPath, func(r io.Reader) error {
		var err error
		rows, err = ReadLimitedRoutes(r, t.comma())
		return err
	})
	return rows, err
}

// PriceBands implementa domain.PriceSource.
func (t FileTables) PriceBands(_ context.Context) ([]domain.PriceBand, error) {
	var rows []domain.PriceBand
	err := readFile(t.PricesPath, func(r io.Reader) error {
		var err error
		rows, err = ReadPriceBands(r, t.comma())
		return err
	})
	return rows, err
}

func (t FileTables) comma() rune {
	if t.Comma == 0 {
		return ','
	}
	return t.Comma
}

func readFile(path string, fn func(io.Reader) error) error {
	f, err := os.Open(path)
	if err != nil {
		return &domain.ResourceError{Path: path, Err: err}
	}
	defer func() { _ = f.Close() }()

	err = fn(f)
	var rowErr *domain.MalformedRowError
	if errors.As(err, &rowErr) {
		rowErr.Path = path
	}
	return err
}

// ReadRoutes lê: origem, destino, prazo, seguro, kg, fixa.
func ReadRoutes(r io.Reader, comma rune) ([]domain.Route, error) {
	var out []domain.Route
	err := readRows(r, comma, 6, func(rec row) error {
		route := domain.Route{
			Origin:      rec.fields[0],
			Destination: rec.fields[1],
			PriceKey:    rec.fields[4],
		}
		var err error
		if route.DeadlineDays, err = rec.intAt(2, "prazo"); err != nil {
			return err
		}
		if route.InsurancePercent, err = rec.intAt(3, "seguro"); err != nil {
			return err
		}
		if route.FixedFee, err = rec.intAt(5, "fixa"); err != nil {
			return err
		}
		out = append(out, route)
		return nil
	})
	return out, err
}

// ReadLimitedRoutes lê: origem, destino, limite, prazo, seguro, icms, alfandega, kg.
func ReadLimitedRoutes(r io.Reader, comma rune) ([]domain.LimitedRoute, error) {
	var out []domain.LimitedRoute
	err := readRows(r, comma, 8, func(rec row) error {
		route := domain.LimitedRoute{
			Origin:      rec.fields[0],
			Destination: rec.fields[1],
			PriceKey:    rec.fields[7],
		}
		ints := []struct {
			dst *int
			col int
			nm  string
		}{
			{&route.WeightLimit, 2, "limite"},
			{&route.DeadlineDays, 3, "prazo"},
			{&route.InsurancePercent, 4, "seguro"},
			{&route.TaxPercent, 5, "icms"},
			{&route.CustomsPercent, 6, "alfandega"},
		}
		for _, f := range ints {
			v, err := rec.intAt(f.col, f.nm)
			if err != nil {
				return err
			}
			*f.dst = v
		}
		out = append(out, route)
		return nil
	})
	return out, err
}

// ReadPriceBands lê: nome, inicial, final, preco.
//
// Um "final" que não é inteiro (vazio, "-", texto) marca a faixa como aberta.
func ReadPriceBands(r io.Reader, comma rune) ([]domain.PriceBand, error) {
	var out []domain.PriceBand
	err := readRows(r, comma, 4, func(rec row) error {
		band := domain.PriceBand{Key: rec.fields[0]}
		var err error
		if band.Lower, err = rec.intAt(1, "inicial"); err != nil {
			return err
		}
		if upper, err := strconv.Atoi(strings.TrimSpace(rec.fields[2])); err == nil {
			band.Upper = upper
		} else {
			band.Open = true
		}
		if band.PricePerKg, err = rec.decimalAt(3, "preco"); err != nil {
			return err
		}
		out = append(out, band)
		return nil
	})
	return out, err
}

type row struct {
	fields []string
	line   int
}

func (r row) intAt(col int, name string) (int, error) {
	raw := r.fields[col]
	v, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 0, &domain.MalformedRowError{Line: r.line, Column: name, Value: raw, Err: err}
	}
	return v, nil
}

func (r row) decimalAt(col int, name string) (decimal.Decimal, error) {
	raw := r.fields[col]
	v, err := decimal.NewFromString(strings.TrimSpace(raw))
	if err != nil {
		return decimal.Zero, &domain.MalformedRowError{Line: r.line, Column: name, Value: raw, Err: err}
	}
	return v, nil
}

// readRows pula o cabeçalho e chama fn para cada linha, na ordem do arquivo.
func readRows(r io.Reader, comma rune, minFields int, fn func(row) error) error {
	cr := csv.NewReader(r)
	cr.Comma = comma
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true

	header := true
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			var pe *csv.ParseError
			if errors.As(err, &pe) {
				return &domain.MalformedRowError{Line: pe.Line, Err: pe.Err}
			}
			return fmt.Errorf("read table: %w", err)
		}
		if header {
			header = false
			continue
		}

		line, _ := cr.FieldPos(0)
		if len(rec) < minFields {
			return &domain.MalformedRowError{Line: line, Err: fmt.Errorf("expected %d columns, got %d", minFields, len(rec))}
		}
		if err := fn(row{fields: rec, line: line}); err != nil {
			return err
		}
	}
}
