package main

import (
	"flag"
	"fmt"
	"image"
	"io"
	"log"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"runtime/pprof"
	"strconv"
	"strings"

	draw9 "9fans.net/go/draw"
	"9fans.net/go/plan9"
	"9fans.net/go/plan9/client"
	"9fans.net/go/plumb"

	"github.com/anastasop/iboard/board"
)

const (
	progName = "iboard"

	darkgrey = draw9.Color(uint32(0x666666FF))
	yellow   = draw9.Color(uint32(0xFFFF00FF))

	escKey = 27
)

var (
	configFile     = flag.String("c", "iboard.toml", "read the configuration from `file`")
	windowSizeFlag = flag.String("w", "", "set window size, like 1300x800")
	outputDir      = flag.String("o", "", "write exported images to `dir`")
	importImage    = flag.String("i", "", "draw the image `file` on the board at start")
	startFull      = flag.Bool("f", false, "start in fullscreen")
	silent         = flag.Bool("q", false, "silent mode, do not log anything")
	verbose        = flag.Bool("v", false, "verbose mode, log board events and export times")
)

var (
	enableProfiler = flag.Bool("profile", false, "run with the profiler enabled")
	cpuprofile     = flag.String("cpuprofile", "cpu.prof", "write cpu profile to `file`")
	memprofile     = flag.String("memprofile", "mem.prof", "write memory profile to `file`")
)

var plumber *client.Fid

func usage() {
	fmt.Fprintf(os.Stderr, `usage: %s [-f|-q|-v] [-c file] [-w WxH] [-o dir] [-i image]

%s is a whiteboard.

Flags:
`, progName, progName)
	flag.PrintDefaults()
	os.Exit(2)
}

func main() {
	log.SetPrefix("")
	log.SetFlags(0)
	flag.Usage = usage
	flag.Parse()

	if *enableProfiler {
		f, err := os.Create(*cpuprofile)
		if err != nil {
			log.Fatal("could not create CPU profile: ", err)
		}
		defer f.Close()
		if err := pprof.StartCPUProfile(f); err != nil {
			log.Fatal("could not start CPU profile: ", err)
		}
		defer pprof.StopCPUProfile()
	}

	config, err := LoadConfig(*configFile)
	if err != nil {
		log.Fatal(err)
	}
	applyFlags(&config)

	windowSize, ok := stringToPoint(config.Window)
	if !ok {
		log.Fatalf("cannot compute window size from %s", config.Window)
	}
	colors, err := config.Colors()
	if err != nil {
		log.Fatalf("palette: %v", err)
	}

	if *silent {
		log.SetOutput(io.Discard)
	}
	if *verbose && !*silent {
		board.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug})))
	}

	if config.Output.Plumb {
		connectToPlumber()
	}
	dctl := connectToDisplay(windowSize)

	exporter := NewExporter(config.Output.Dir, config.Output.Plumb)
	defer exporter.Close()

	disp := dctl.display
	toolbar := NewToolbar(colors, disp.Scale(config.Toolbar.CellSize), disp.Scale(config.Toolbar.Padding))
	bv := NewBoardView(config, toolbar, exporter)
	bv.Connect(dctl)
	bv.Mount(config)
	if *importImage != "" {
		bv.Import(*importImage)
	}

	views := []View{bv}
	for len(views) > 0 {
		v := views[len(views)-1]
		v.Attach(dctl.display.Image.Bounds())
		if nv := v.Handle(); nv != nil {
			nv.Connect(dctl)
			views = append(views, nv)
		} else {
			v.Free()
			views = views[0 : len(views)-1]
		}
	}

	if *enableProfiler {
		f, err := os.Create(*memprofile)
		if err != nil {
			log.Fatal("could not create memory profile: ", err)
		}
		defer f.Close()
		runtime.GC()
		if err := pprof.WriteHeapProfile(f); err != nil {
			log.Fatal("could not write memory profile: ", err)
		}
	}
}

// applyFlags overrides the configuration with the command line.
func applyFlags(config *Config) {
	if *windowSizeFlag != "" {
		config.Window = *windowSizeFlag
	}
	if *outputDir != "" {
		config.Output.Dir = *outputDir
	}
	if *startFull {
		config.Board.Fullscreen = true
	}
}

func connectToPlumber() {
	var err error
	plumber, err = plumb.Open("send", plan9.OWRITE|plan9.OCEXEC)
	if err != nil {
		log.Printf("plumber not available: %v", err)
	}
}

func plumbFile(s string) {
	if plumber == nil {
		log.Printf("plumber not available")
		return
	}
	if abs, err := filepath.Abs(s); err == nil {
		s = abs
	}

	m := plumb.Message{
		Src:  progName,
		Dir:  filepath.Dir(s),
		Type: "text",
		Data: []byte(s),
	}
	if err := m.Send(plumber); err != nil {
		log.Printf("plumber: %v", err)
	}
}

func stringToPoint(s string) (image.Point, bool) {
	fields := strings.Split(s, "x")
	if len(fields) != 2 {
		return image.Point{}, false
	}
	x, err := strconv.Atoi(fields[0])
	if err != nil {
		return image.Point{}, false
	}
	y, err := strconv.Atoi(fields[1])
	if err != nil {
		return image.Point{}, false
	}
	return image.Pt(x, y), true
}
