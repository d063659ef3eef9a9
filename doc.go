// Package quill is an in-memory stroke annotation engine for [Ebitengine].
//
// Quill stores hand-drawn strokes as a datablock of layers, each layer a
// timeline of frames, each frame a list of strokes made of pressure and
// strength sampled points. On top of that model it provides stroke
// simplification, fill triangulation with UVs, a deterministic modifier
// stack, and a dirty-tracked cache of GPU-ready triangle batches.
//
// # Quick start
//
//	data := quill.NewDatablock("notes")
//	data.Palette.Add(&quill.ColorDef{Name: "ink", Stroke: quill.ColorBlack})
//	layer := data.AddLayer("ink", true)
//	frame := layer.GetFrame(1, quill.FrameAddNew)
//	frame.AddStroke(quill.NewStroke("ink", 3,
//		quill.NewPoint(0, 0, 0),
//		quill.NewPoint(10, 0, 0),
//		quill.NewPoint(0, 10, 0),
//	))
//
//	scene := quill.NewScene()
//	obj := quill.NewObject("notes", data)
//	scene.AddObject(obj)
//	scene.AddModifier(obj, quill.NewNoiseModifier("wobble"))
//
//	cache := scene.Populate(obj) // rebuilt only when dirty
//
// Draw the cache with a [Drawer] from inside your [ebiten.Game]:
//
//	d := &quill.Drawer{View: quill.FitView(640, 480, 16, frame)}
//	d.DrawCache(screen, cache)
//
// # Frames
//
// [Layer.GetFrame] resolves a time to a frame: read-only lookups show the
// nearest frame at or before the time, [FrameAddNew] and [FrameAddCopy]
// create a keyframe when none exists there.
//
// # Modifiers
//
// Stroke modifiers ([NoiseModifier], [SubdivModifier], [SimplifyModifier],
// [ThicknessModifier], [TintModifier], [ColorModifier], [OpacityModifier],
// [LatticeModifier], [SmoothModifier], [OffsetModifier], [BuildModifier])
// deform strokes in place; frame modifiers ([DupliModifier]) add strokes.
// Modifiers only ever see per-object derived copies, never the stored
// strokes. Stacks can be loaded from YAML with [LoadStack].
//
// # Output
//
// Besides ebiten batches, a frame can be rasterized on the CPU with
// [RasterizeFill] and [RasterizeColor] (via [vector]) or exported with
// [Scene.ExportPDF] (via [gofpdf]). Cache events can be forwarded to a
// [Donburi] world with the quill/ecs adapter.
//
// [Ebitengine]: https://ebitengine.org
// [vector]: https://pkg.go.dev/golang.org/x/image/vector
// [gofpdf]: https://github.com/jung-kurt/gofpdf
// [Donburi]: https://github.com/yohamta/donburi
package quill
