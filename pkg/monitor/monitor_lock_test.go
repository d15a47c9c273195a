/*
 * Copyright 2025 Carver Automation Corporation.
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package monitor

import (
	_ "embed"
	"go/ast"
	"go/parser"
	"go/token"
	"testing"
)

//go:embed monitor.go
var monitorSource string

// callsUnderLock are receiver methods and fields that perform I/O or take
// the lock themselves.
var callsUnderLock = map[string]bool{
	"Build":       true,
	"Send":        true,
	"Delete":      true,
	"notify":      true,
	"publish":     true,
	"pollFailed":  true,
	"claimNotice": true,
}

func TestTickDoesNotCallOutWhileLocked(t *testing.T) {
	fileSet := token.NewFileSet()

	parsed, err := parser.ParseFile(fileSet, "monitor.go", monitorSource, 0)
	if err != nil {
		t.Fatalf("parse monitor.go: %v", err)
	}

	var tickDecl *ast.FuncDecl

	for _, decl := range parsed.Decls {
		funcDecl, ok := decl.(*ast.FuncDecl)
		if ok && funcDecl.Recv != nil && funcDecl.Name.Name == "tick" {
			tickDecl = funcDecl

			break
		}
	}

	if tickDecl == nil || tickDecl.Body == nil {
		t.Fatal("tick method not found in monitor.go")
	}

	receiver := tickDecl.Recv.List[0].Names[0].Name

	var (
		locked     bool
		lockSeen   bool
		buildSeen  bool
		violations []string
	)

	for _, stmt := range tickDecl.Body.List {
		switch muCall(stmt, receiver) {
		case "Lock":
			locked = true
			lockSeen = true

			continue
		case "Unlock":
			locked = false

			continue
		}

		ast.Inspect(stmt, func(node ast.Node) bool {
			call, ok := node.(*ast.CallExpr)
			if !ok {
				return true
			}

			sel, ok := call.Fun.(*ast.SelectorExpr)
			if !ok || !callsUnderLock[sel.Sel.Name] || !rootedAt(sel.X, receiver) {
				return true
			}

			if sel.Sel.Name == "Build" {
				buildSeen = true
			}

			if locked && !unlocksFirst(stmt, receiver) {
				violations = append(violations, fileSet.Position(call.Pos()).String()+" "+sel.Sel.Name)
			}

			return true
		})
	}

	if !lockSeen || !buildSeen {
		t.Fatal("tick no longer locks m.mu or calls the builder; update this test")
	}

	for _, v := range violations {
		t.Errorf("tick calls out while holding %s.mu: %s", receiver, v)
	}
}

// muCall reports "Lock" or "Unlock" for a top-level recv.mu.Lock()/Unlock() statement.
func muCall(stmt ast.Stmt, receiver string) string {
	expr, ok := stmt.(*ast.ExprStmt)
	if !ok {
		return ""
	}

	call, ok := expr.X.(*ast.CallExpr)
	if !ok {
		return ""
	}

	sel, ok := call.Fun.(*ast.SelectorExpr)
	if !ok {
		return ""
	}

	mu, ok := sel.X.(*ast.SelectorExpr)
	if !ok || mu.Sel.Name != "mu" || !rootedAt(mu.X, receiver) {
		return ""
	}

	return sel.Sel.Name
}

// unlocksFirst reports whether stmt is a block that releases the lock before
// doing anything else, as in an early-return branch.
func unlocksFirst(stmt ast.Stmt, receiver string) bool {
	ifStmt, ok := stmt.(*ast.IfStmt)
	if !ok || len(ifStmt.Body.List) == 0 {
		return false
	}

	return muCall(ifStmt.Body.List[0], receiver) == "Unlock"
}

func rootedAt(expr ast.Expr, receiver string) bool {
	for {
		switch e := expr.(type) {
		case *ast.Ident:
			return e.Name == receiver
		case *ast.SelectorExpr:
			expr = e.X
		default:
			return false
		}
	}
}
