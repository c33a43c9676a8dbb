package online

import (
	"github.com/katalvlaran/romkit/matrix"
	"github.com/katalvlaran/romkit/tensorio"
)

// ImportMatrix reads an M×N online matrix from dir/name.
func ImportMatrix(m, n int, dir, name string, opts ...tensorio.Option) (*matrix.Dense, error) {
	return tensorio.Import[*matrix.Dense](MatrixFactory{m, n}, tensorio.Self, dir, name, opts...)
}

// ImportMatrixBlock reads a block online matrix from dir/name.
func ImportMatrixBlock(ms, ns []int, dir, name string, opts ...tensorio.Option) (*matrix.Dense, error) {
	return tensorio.Import[*matrix.Dense](MatrixBlockFactory{ms, ns}, tensorio.Self, dir, name, opts...)
}

// ImportMatrices reads a list of M×N online matrices from dir/name.
func ImportMatrices(m, n int, dir, name string, opts ...tensorio.Option) ([]*matrix.Dense, error) {
	return tensorio.ImportList[*matrix.Dense](MatrixFactory{m, n}, tensorio.Self, dir, name, opts...)
}

// ImportMatricesBlock reads a list of block online matrices from dir/name.
func ImportMatricesBlock(ms, ns []int, dir, name string, opts ...tensorio.Option) ([]*matrix.Dense, error) {
	return tensorio.ImportList[*matrix.Dense](MatrixBlockFactory{ms, ns}, tensorio.Self, dir, name, opts...)
}

// ImportVector reads an online vector of length N from dir/name.
func ImportVector(n int, dir, name string, opts ...tensorio.Option) (*matrix.Vector, error) {
	return tensorio.Import[*matrix.Vector](VectorFactory{n}, tensorio.Self, dir, name, opts...)
}

// ImportVectorBlock reads a block online vector from dir/name.
func ImportVectorBlock(ns []int, dir, name string, opts ...tensorio.Option) (*matrix.Vector, error) {
	return tensorio.Import[*matrix.Vector](VectorBlockFactory{ns}, tensorio.Self, dir, name, opts...)
}

// ImportVectors reads a list of online vectors of length N from dir/name.
func ImportVectors(n int, dir, name string, opts ...tensorio.Option) ([]*matrix.Vector, error) {
	return tensorio.ImportList[*matrix.Vector](VectorFactory{n}, tensorio.Self, dir, name, opts...)
}

// ImportVectorsBlock reads a list of block online vectors from dir/name.
func ImportVectorsBlock(ns []int, dir, name string, opts ...tensorio.Option) ([]*matrix.Vector, error) {
	return tensorio.ImportList[*matrix.Vector](VectorBlockFactory{ns}, tensorio.Self, dir, name, opts...)
}

// ExportMatrix writes an online (possibly block) matrix to dir/name.
func ExportMatrix(a *matrix.Dense, dir, name string, opts ...tensorio.Option) error {
	return tensorio.Export(a, tensorio.Self, dir, name, opts...)
}

// ExportMatrices writes a list of online matrices to dir/name.
func ExportMatrices(as []*matrix.Dense, dir, name string, opts ...tensorio.Option) error {
	return tensorio.ExportList(as, tensorio.Self, dir, name, opts...)
}

// ExportVector writes an online (possibly block) vector to dir/name.
func ExportVector(v *matrix.Vector, dir, name string, opts ...tensorio.Option) error {
	return tensorio.Export(v, tensorio.Self, dir, name, opts...)
}

// ExportVectors writes a list of online vectors to dir/name.
func ExportVectors(vs []*matrix.Vector, dir, name string, opts ...tensorio.Option) error {
	return tensorio.ExportList(vs, tensorio.Self, dir, name, opts...)
}
