// Package fuzztests houses Go fuzz harnesses that exercise the fstump
// pipeline (interchange file -> program -> assembly). Its goal is to smoke
// test robustness and guard against panics on arbitrary inputs.
//
// Назначение: прогонять произвольные байты через progfile.Decode,
// конвертацию в AST и оба прохода кодогенерации.
//
// Не делает: запись файлов, выполнение CLI.
//
// Зависимости: internal/progfile, internal/codegen, internal/testkit.

package fuzztests
