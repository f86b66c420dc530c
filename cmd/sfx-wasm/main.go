//go:build js && wasm

package main

import (
	"encoding/json"
	"syscall/js"
	"unsafe"

	"github.com/cwbudde/algo-sfx/preset"
	"github.com/cwbudde/algo-sfx/sfx"
)

var renderBuffer []float32

func main() {
	// Keep program running
	c := make(chan struct{})

	// Export functions to JavaScript
	js.Global().Set("sfxNewPatch", js.FuncOf(sfxNewPatch))
	js.Global().Set("sfxRandomize", js.FuncOf(sfxRandomize))
	js.Global().Set("sfxPreset", js.FuncOf(sfxPreset))
	js.Global().Set("sfxMutate", js.FuncOf(sfxMutate))
	js.Global().Set("sfxRender", js.FuncOf(sfxRender))
	js.Global().Set("sfxRenderPtr", js.FuncOf(sfxRenderPtr))
	js.Global().Set("sfxSampleRate", js.FuncOf(sfxSampleRate))
	js.Global().Set("sfxGetMemoryBuffer", js.FuncOf(sfxGetMemoryBuffer))

	println("WASM sfx module loaded")
	<-c
}

func patchToJS(p sfx.Patch) interface{} {
	b, err := json.Marshal(preset.FromPatch(p))
	if err != nil {
		println("patch encode failed:", err.Error())
		return nil
	}
	return string(b)
}

func patchFromJS(s string) (sfx.Patch, error) {
	p := sfx.New()
	var f preset.File
	if err := json.Unmarshal([]byte(s), &f); err != nil {
		return p, err
	}
	if err := preset.ApplyFile(&p, &f); err != nil {
		return p, err
	}
	return p, nil
}

func sfxNewPatch(this js.Value, args []js.Value) interface{} {
	return patchToJS(sfx.NewDefault())
}

func sfxRandomize(this js.Value, args []js.Value) interface{} {
	if len(args) < 1 {
		return nil
	}
	seed := int64(args[0].Int())
	return patchToJS(sfx.Randomize(seed))
}

func sfxPreset(this js.Value, args []js.Value) interface{} {
	if len(args) < 2 {
		return nil
	}
	c, err := sfx.ParseCategory(args[0].String())
	if err != nil {
		println("unknown category:", args[0].String())
		return nil
	}
	seed := int64(args[1].Int())
	return patchToJS(sfx.RandomizePreset(c, seed))
}

func sfxMutate(this js.Value, args []js.Value) interface{} {
	if len(args) < 3 {
		return nil
	}
	p, err := patchFromJS(args[0].String())
	if err != nil {
		println("invalid patch:", err.Error())
		return nil
	}
	seed := int64(args[1].Int())
	amount := args[2].Float()
	return patchToJS(sfx.Mutate(p, seed, amount))
}

// sfxRender synthesizes the patch into the shared buffer and returns
// the frame count. JavaScript reads the samples as a Float32Array view
// over WASM linear memory at sfxRenderPtr.
func sfxRender(this js.Value, args []js.Value) interface{} {
	if len(args) < 1 {
		return 0
	}
	p, err := patchFromJS(args[0].String())
	if err != nil {
		println("invalid patch:", err.Error())
		return 0
	}
	g, err := sfx.NewGenerator(p)
	if err != nil {
		println("generator init failed:", err.Error())
		return 0
	}
	renderBuffer = g.RenderAll()
	return js.ValueOf(len(renderBuffer))
}

func sfxRenderPtr(this js.Value, args []js.Value) interface{} {
	if len(renderBuffer) == 0 {
		return 0
	}
	ptr := &renderBuffer[0]
	return js.ValueOf(uintptr(unsafe.Pointer(ptr)))
}

func sfxSampleRate(this js.Value, args []js.Value) interface{} {
	if len(args) < 1 {
		return 0
	}
	p, err := patchFromJS(args[0].String())
	if err != nil {
		return 0
	}
	return js.ValueOf(p.SampleRate)
}

func sfxGetMemoryBuffer(this js.Value, args []js.Value) interface{} {
	// Return WASM memory buffer for access from JS
	return js.Global().Get("Go").Get("_inst").Get("exports").Get("mem").Get("buffer")
}
