package frete

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
)

// MaxBatchLine é o maior tamanho aceito para uma linha do lote, em bytes.
const MaxBatchLine = 64 * 1024

// ErrLineTooLong marca uma linha do lote maior que MaxBatchLine.
var ErrLineTooLong = errors.New("line too long")

// LineError é uma linha do lote que não pôde ser cotada.
type LineError struct {
	Line int
	Err  error
}

func (e LineError) Error() string { return fmt.Sprintf("line %d: %v", e.Line, e.Err) }

// RunBatch lê uma requisição por linha ("origem destino nota_fiscal peso",
// separados por espaço) e escreve as linhas de cada cotação, na ordem da entrada.
//
// Linhas vazias e comentários (#) são ignorados. Linhas inválidas são
// devolvidas em LineError e não interrompem o lote; o erro retornado é
// apenas de leitura/escrita.
func RunBatch(ctx context.Context, r io.Reader, w io.Writer, q Quoter) ([]LineError, error) {
	var bad []LineError

	br := bufio.NewReader(r)
	for n := 1; ; n++ {
		raw, tooLong, err := nextLine(br)
		if errors.Is(err, io.EOF) {
			return bad, nil
		}
		if err != nil {
			return bad, fmt.Errorf("read batch: %w", err)
		}
		if tooLong {
			bad = append(bad, LineError{Line: n, Err: fmt.Errorf("%w (max %d bytes)", ErrLineTooLong, MaxBatchLine)})
			continue
		}

		line := strings.TrimSpace(raw)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		req, err := ExtractAndValidateArgs(strings.Fields(line))
		if err != nil {
			bad = append(bad, LineError{Line: n, Err: err})
			continue
		}
		if err := Run(ctx, w, q, req); err != nil {
			return bad, err
		}
	}
}

// nextLine lê uma linha sem o terminador ("\n" ou "\r\n"). Uma linha maior
// que MaxBatchLine é consumida até o fim e devolvida vazia com tooLong.
// io.EOF só é retornado quando não há mais nenhuma linha.
func nextLine(br *bufio.Reader) (line string, tooLong bool, err error) {
	var sb strings.Builder
	for {
		chunk, isPrefix, err := br.ReadLine()
		if err != nil {
			return "", false, err
		}
		if !tooLong {
			if sb.Len()+len(chunk) > MaxBatchLine {
				tooLong = true
				sb.Reset()
			} else {
				sb.Write(chunk)
			}
		}
		if !isPrefix {
			return sb.String(), tooLong, nil
		}
	}
}
