package service

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
	"tmua_guide_backend/internal/model"
)

// 导入文件的列名与既有题库表格模板保持一致（含模板里的历史拼写）
const (
	colSerialNo      = "Serial No"
	colQuestion      = "QUESTION"
	colOptions       = "Options"
	colCorrectOption = "Correct option"
	colTopic         = "TAG"
	colDifficulty    = "Difiiculty tag"
	colSource        = "Source"
	colQType         = "q_type"
)

var requiredColumns = []string{
	colSerialNo, colQuestion, colOptions, colCorrectOption, colTopic, colDifficulty, colSource,
}

// ImportResult 批量导入结果。存在行级错误时不写库，仅报告。
// swagger:model ImportResult
type ImportResult struct {
	Status        string   `json:"status"` // success / partial_success / failed
	Message       string   `json:"message,omitempty"`
	Errors        []string `json:"errors,omitempty"`
	ValidCount    int      `json:"valid_count"`
	ImportedCount int      `json:"imported_count"`
}

// parseQuestionCSV 逐行校验导入文件，返回合法记录与行级错误。
// 行号从2开始计（第1行是表头），与表格软件中看到的行号一致。
func parseQuestionCSV(r io.Reader) ([]model.Question, []string, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return nil, nil, fmt.Errorf("read header: %w", err)
	}

	colIndex := make(map[string]int, len(header))
	for i, name := range header {
		colIndex[strings.TrimSpace(name)] = i
	}
	for _, col := range requiredColumns {
		if _, ok := colIndex[col]; !ok {
			return nil, nil, fmt.Errorf("missing column %q", col)
		}
	}

	cell := func(row []string, col string) string {
		idx, ok := colIndex[col]
		if !ok || idx >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[idx])
	}

	var questions []model.Question
	var rowErrors []string

	for rowNum := 2; ; rowNum++ {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			rowErrors = append(rowErrors, fmt.Sprintf("Row %d: %v", rowNum, err))
			continue
		}

		serial, err := strconv.ParseUint(cell(row, colSerialNo), 10, 32)
		if err != nil || serial == 0 {
			rowErrors = append(rowErrors, fmt.Sprintf("Row %d: invalid %s", rowNum, colSerialNo))
			continue
		}

		text := cell(row, colQuestion)
		if text == "" {
			rowErrors = append(rowErrors, fmt.Sprintf("Row %d: %s is empty", rowNum, colQuestion))
			continue
		}

		qType := 0
		if raw := cell(row, colQType); raw != "" {
			qType, err = strconv.Atoi(raw)
			if err != nil {
				rowErrors = append(rowErrors, fmt.Sprintf("Row %d: invalid %s", rowNum, colQType))
				continue
			}
		}

		correct := cell(row, colCorrectOption)
		questions = append(questions, model.Question{
			QuesNumber:    uint(serial),
			Question:      text,
			Options:       cell(row, colOptions),
			Solution:      correct,
			Topic:         cell(row, colTopic),
			Difficulty:    cell(row, colDifficulty),
			Source:        cell(row, colSource),
			QType:         qType,
			CorrectAnswer: correct,
		})
	}

	return questions, rowErrors, nil
}
