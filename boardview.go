package main

import (
	"image"
	"log"
	"os"
	"time"

	draw9 "9fans.net/go/draw"

	"github.com/anastasop/iboard/board"
)

// mousePointer is the pointer id of the mouse. devdraw has one pointer.
const mousePointer = 1

// BoardView is the whiteboard: the toolbar on top and the board below it.
type BoardView struct {
	engine   *board.Engine
	toolbar  *Toolbar
	env      *screenEnv
	exporter *Exporter
	frame    time.Duration

	window     image.Rectangle
	fullscreen bool
	toggleC    chan bool // fullscreen requests of the engine
	buttons    int       // mouse buttons of the previous event
	dirty      bool

	dctl *DisplayControl
}

// NewBoardView returns a BoardView for the configuration. The engine is
// created on Connect, when the display geometry is known.
func NewBoardView(config Config, toolbar *Toolbar, exporter *Exporter) *BoardView {
	return &BoardView{
		toolbar:    toolbar,
		exporter:   exporter,
		frame:      time.Second / time.Duration(config.Board.FrameRate),
		fullscreen: config.Board.Fullscreen,
		toggleC:    make(chan bool, 1),
	}
}

// Mount creates the engine in the display.
func (bv *BoardView) Mount(config Config) {
	bv.window = bv.dctl.display.Image.Bounds()
	bv.toolbar.Attach(bv.window)
	bv.env = newScreenEnv(bv.dctl, bv.toolbar)
	bv.engine = board.New(bv.env,
		board.WithGeometry(config.Geometry()),
		board.WithFullscreen(bv.fullscreen),
		board.WithPreserveOnResize(config.Board.PreserveOnResize),
		board.WithToolState(config.ToolState()),
		board.WithFullscreenToggle(bv.requestFullscreen),
	)
}

func (bv *BoardView) Connect(dctl *DisplayControl) {
	bv.dctl = dctl
}

func (bv *BoardView) Attach(r image.Rectangle) {
	if r.Eq(bv.window) {
		return
	}
	bv.window = r
	bv.toolbar.Attach(r)
	bv.engine.Handle(board.WindowResize{})
	bv.dirty = true
}

func (bv *BoardView) Free() {}

// requestFullscreen flips the fullscreen state of the window. devdraw
// windows have no fullscreen mode, so the board takes the whole window
// instead, and the change is reported back on the next loop iteration.
func (bv *BoardView) requestFullscreen() {
	select {
	case bv.toggleC <- !bv.fullscreen:
	default:
	}
}

// Import draws the image file at path on the board.
func (bv *BoardView) Import(path string) {
	f, err := os.Open(path)
	if err != nil {
		log.Printf("import: %v", err)
		return
	}
	defer f.Close()
	if err := bv.engine.Import(f); err != nil {
		log.Printf("import %s: %v", path, err)
		return
	}
	bv.dirty = true
}

func (bv *BoardView) Handle() View {
	bt2menu := &draw9.Menu{
		Item: []string{"pen", "eraser", "", "clear", "save", "", "fullscreen", "help", "", "exit"},
	}

	dctl := bv.dctl
	ticker := time.NewTicker(bv.frame)
	defer ticker.Stop()

	bv.paint(dctl)
	for {
		select {
		case err := <-dctl.errch:
			log.Printf("display: %v", err)
		case k := <-dctl.kctl.C:
			switch k {
			case 'q', escKey: // exit
				return nil
			}
			if it, ok := bv.toolbar.Key(k); ok {
				if v := bv.do(it); v != nil {
					return v
				}
			}
		case dctl.mctl.Mouse = <-dctl.mctl.C:
			m := dctl.mctl.Mouse
			pressed := m.Buttons &^ bv.buttons
			switch {
			case pressed&1 != 0 && m.Buttons == 1: // draw or use the toolbar
				if it, ok := bv.toolbar.At(m.Point); ok {
					if v := bv.do(it); v != nil {
						return v
					}
				} else if m.Point.In(bv.boardRect()) {
					p := bv.env.toLogical(m.Point)
					bv.engine.Handle(board.PointerDown{Pointer: mousePointer, X: p.X, Y: p.Y})
				}
			case m.Buttons&1 != 0 && pressed&^1 != 0: // chord cancels the stroke
				bv.engine.Handle(board.PointerCancel{Pointer: mousePointer})
			case m.Buttons == 1:
				if bv.env.captured == mousePointer {
					p := bv.env.toLogical(m.Point)
					if bv.engine.Handle(board.PointerMove{Pointer: mousePointer, X: p.X, Y: p.Y}) {
						bv.dirty = true
					}
				}
			case m.Buttons == 0 && bv.buttons&1 != 0:
				bv.engine.Handle(board.PointerUp{Pointer: mousePointer})
			case m.Buttons == 2 && bv.buttons == 0: // view menu
				bv.buttons = 0
				switch draw9.MenuHit(2, dctl.mctl, bt2menu, nil) {
				case 0: // pen
					bv.engine.SelectTool(board.Pen)
					bv.dirty = true
				case 1: // eraser
					bv.engine.SelectTool(board.Eraser)
					bv.dirty = true
				case 3: // clear
					bv.clear()
				case 4: // save
					bv.export()
				case 6: // fullscreen
					bv.cancelStroke()
					bv.engine.ToggleFullscreen()
				case 7: // help
					bv.cancelStroke()
					return NewHelpView(bv.toolbar)
				case 9: // exit
					return nil
				}
				continue
			}
			bv.buttons = m.Buttons
		case <-dctl.mctl.Resize:
			if err := dctl.display.Attach(draw9.RefNone); err != nil {
				log.Fatalf("display: failed to attach: %v", err)
			}
			bv.Attach(dctl.display.Image.Bounds())
		case on := <-bv.toggleC:
			bv.fullscreen = on
			if bv.engine.Handle(board.FullscreenChange{On: on}) {
				bv.dirty = true
			}
		case res := <-bv.exporter.Done():
			if res.err != nil {
				log.Printf("%v", res.err)
			} else {
				log.Printf("saved %s", res.path)
			}
		case <-ticker.C:
			if bv.engine.Handle(board.AnimationFrame{}) {
				bv.dirty = true
			}
			if bv.dirty {
				bv.paint(dctl)
			}
		}
	}
}

// do runs the action of a toolbar item. It returns the view to switch to,
// if any.
func (bv *BoardView) do(it toolbarItem) View {
	if it.apply(bv.engine) {
		bv.dirty = true
		return nil
	}
	switch it.act {
	case actClear:
		bv.clear()
	case actExport:
		bv.export()
	case actFullscreen:
		bv.cancelStroke()
		bv.engine.ToggleFullscreen()
	case actHelp:
		bv.cancelStroke()
		return NewHelpView(bv.toolbar)
	}
	return nil
}

// cancelStroke ends a stroke in progress before the board changes
// geometry or gives the window to another view.
func (bv *BoardView) cancelStroke() {
	if _, ok := bv.engine.Session(); ok {
		bv.engine.Handle(board.PointerCancel{Pointer: mousePointer})
	}
}

func (bv *BoardView) clear() {
	if bv.engine.Clear() {
		bv.dirty = true
	}
}

func (bv *BoardView) export() {
	snap := bv.engine.Surface().Snapshot()
	if snap == nil {
		log.Printf("export: %v", board.ErrNoContext)
		return
	}
	bv.exporter.Export(snap, time.Now())
}

func (bv *BoardView) boardRect() image.Rectangle {
	return bv.env.boardRect(bv.engine.Surface().Backing())
}

func (bv *BoardView) paint(dctl *DisplayControl) {
	dctl.cls()
	paintToolbar(dctl, bv.toolbar, bv.engine.Tools())
	paintBoard(dctl, bv.boardRect(), bv.engine.Surface().Snapshot())
	dctl.flush()
	bv.dirty = false
}
