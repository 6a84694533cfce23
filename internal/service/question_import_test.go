package service

import (
	"errors"
	"strings"
	"testing"
	"tmua_guide_backend/internal/util"
)

const importHeader = "Serial No,QUESTION,Options,Correct option,TAG,Difiiculty tag,Source,q_type\n"

func TestImportQuestionsSuccess(t *testing.T) {
	csv := importHeader +
		"1,What is 2+2?,A) 3;B) 4;C) 5,B,Arithmetic,Easy,Paper 1,0\n" +
		"2,Solve x^2=4,A) 2;B) -2;C) ±2,C,Algebra,Medium,Paper 2,1\n"

	store := &fakeQuestionAdmin{}
	svc := NewAdminService(nil, nil, store, nil)

	result, err := svc.ImportQuestions(strings.NewReader(csv))
	if err != nil {
		t.Fatalf("ImportQuestions: %v", err)
	}
	if result.Status != "success" || result.ImportedCount != 2 || result.ValidCount != 2 {
		t.Fatalf("result = %+v", result)
	}
	if store.bulkCalls != 1 || len(store.inserted) != 2 {
		t.Fatalf("bulkCalls = %d, inserted = %d", store.bulkCalls, len(store.inserted))
	}

	q := store.inserted[0]
	if q.QuesNumber != 1 || q.Topic != "Arithmetic" || q.Difficulty != "Easy" || q.QType != 0 {
		t.Errorf("第一行解析错误: %+v", q)
	}
	// 正确选项同时落入 solution 与 correct_answer
	if q.Solution != "B" || q.CorrectAnswer != "B" {
		t.Errorf("Solution = %q, CorrectAnswer = %q", q.Solution, q.CorrectAnswer)
	}
}

func TestImportQuestionsRowErrorsBlockInsert(t *testing.T) {
	csv := importHeader +
		"1,What is 2+2?,A) 3;B) 4,B,Arithmetic,Easy,Paper 1,0\n" +
		"abc,Bad serial,A;B,A,Algebra,Hard,Paper 1,0\n" +
		"3,,A;B,A,Algebra,Hard,Paper 1,0\n"

	store := &fakeQuestionAdmin{}
	svc := NewAdminService(nil, nil, store, nil)

	result, err := svc.ImportQuestions(strings.NewReader(csv))
	if err != nil {
		t.Fatalf("ImportQuestions: %v", err)
	}
	// 存在行级错误时整体不入库
	if store.bulkCalls != 0 {
		t.Errorf("bulkCalls = %d, want 0", store.bulkCalls)
	}
	if result.Status != "partial_success" {
		t.Errorf("Status = %q, want partial_success", result.Status)
	}
	if result.ValidCount != 1 || result.ImportedCount != 0 {
		t.Errorf("result = %+v", result)
	}
	if len(result.Errors) != 2 {
		t.Fatalf("Errors = %v", result.Errors)
	}
	// 行号从2起算，与表格软件一致
	if !strings.HasPrefix(result.Errors[0], "Row 3:") || !strings.HasPrefix(result.Errors[1], "Row 4:") {
		t.Errorf("Errors = %v", result.Errors)
	}
}

func TestImportQuestionsAllRowsInvalid(t *testing.T) {
	csv := importHeader +
		"0,Zero serial,A;B,A,Algebra,Hard,Paper 1,0\n" +
		"2,Good text,A;B,A,Algebra,Hard,Paper 1,notanumber\n"

	svc := NewAdminService(nil, nil, &fakeQuestionAdmin{}, nil)

	result, err := svc.ImportQuestions(strings.NewReader(csv))
	if err != nil {
		t.Fatalf("ImportQuestions: %v", err)
	}
	if result.Status != "failed" || result.ValidCount != 0 {
		t.Errorf("result = %+v", result)
	}
}

func TestImportQuestionsMissingColumn(t *testing.T) {
	csv := "Serial No,QUESTION,Options\n1,What,A;B\n"

	svc := NewAdminService(nil, nil, &fakeQuestionAdmin{}, nil)

	if _, err := svc.ImportQuestions(strings.NewReader(csv)); !errors.Is(err, util.ErrInvalidArgument) {
		t.Errorf("缺列应返回 ErrInvalidArgument, got %v", err)
	}
}

func TestImportQuestionsOptionalQType(t *testing.T) {
	// q_type 列留空时默认为 0
	csv := importHeader +
		"1,What is 2+2?,A) 3;B) 4,B,Arithmetic,Easy,Paper 1,\n"

	store := &fakeQuestionAdmin{}
	svc := NewAdminService(nil, nil, store, nil)

	result, err := svc.ImportQuestions(strings.NewReader(csv))
	if err != nil {
		t.Fatalf("ImportQuestions: %v", err)
	}
	if result.Status != "success" || store.inserted[0].QType != 0 {
		t.Errorf("result = %+v, inserted = %+v", result, store.inserted)
	}
}
