package grove

import (
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
)

// ShaderCompiler turns shader source into an opaque handle. The production
// compiler is [KageCompiler]; tests substitute a fake so the store is
// exercised without a GPU.
type ShaderCompiler interface {
	Compile(src []byte) (any, error)
}

// KageCompiler compiles Kage shader source via ebiten. Kage unifies vertex
// and fragment stages in a single source unit, so Compile takes one source
// blob.
type KageCompiler struct{}

// Compile builds an *ebiten.Shader from Kage source.
func (KageCompiler) Compile(src []byte) (any, error) {
	shader, err := ebiten.NewShader(src)
	if err != nil {
		return nil, fmt.Errorf("compile shader: %w", err)
	}
	return shader, nil
}

// ShaderStore is an owned registry mapping shader names to compiled
// handles. It is injected into whatever needs shaders rather than living
// as a package global. Handles are opaque to the core beyond name-based
// lookup.
type ShaderStore struct {
	compiler ShaderCompiler
	shaders  map[string]any
}

// NewShaderStore creates a store backed by the given compiler.
func NewShaderStore(compiler ShaderCompiler) *ShaderStore {
	return &ShaderStore{
		compiler: compiler,
		shaders:  make(map[string]any),
	}
}

// Compile compiles src and registers the handle under name, replacing any
// previous handle with that name.
func (st *ShaderStore) Compile(name string, src []byte) error {
	handle, err := st.compiler.Compile(src)
	if err != nil {
		return fmt.Errorf("shader %q: %w", name, err)
	}
	st.shaders[name] = handle
	return nil
}

// Lookup returns the handle registered under name.
// A name never compiled yields (nil, false); using it is a no-op for the
// caller, not an error.
func (st *ShaderStore) Lookup(name string) (any, bool) {
	handle, ok := st.shaders[name]
	return handle, ok
}

// Remove drops the handle registered under name. No-op if absent.
func (st *ShaderStore) Remove(name string) {
	delete(st.shaders, name)
}

// Len returns the number of registered shaders.
func (st *ShaderStore) Len() int {
	return len(st.shaders)
}
