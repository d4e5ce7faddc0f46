package cli

import (
	"errors"
	"fmt"
	"image/color"
	"time"

	charmlog "github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/quasilyte/gdata/v2"
	"github.com/spf13/cobra"

	"github.com/phanxgames/awesomemap"
)

const (
	tileSize   = 64
	hudRefresh = 500 * time.Millisecond
)

type viewOptions struct {
	width, height int
	pages         int
	pageWidth     int
	pageHeight    int
	stateKey      string
	persist       bool
	captureDir    string
}

func newViewCmd() *cobra.Command {
	opts := viewOptions{}
	cmd := &cobra.Command{
		Use:   "view",
		Short: "Open a window with a pannable, zoomable test page",
		Long: `View opens a window showing a generated test page. Drag to pan, pinch or
use the mouse wheel to zoom, double-tap to zoom in. With --pages the content is
split into pages that a horizontal swipe flips through.

Keys: R resets the view, F12 writes a screenshot, Esc quits.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runView(cmd, opts)
		},
	}
	cmd.Flags().IntVar(&opts.width, "width", 960, "window width")
	cmd.Flags().IntVar(&opts.height, "height", 640, "window height")
	cmd.Flags().IntVar(&opts.pages, "pages", 1, "number of pages laid out horizontally")
	cmd.Flags().IntVar(&opts.pageWidth, "page-width", 1536, "page width in pixels")
	cmd.Flags().IntVar(&opts.pageHeight, "page-height", 1024, "page height in pixels")
	cmd.Flags().StringVar(&opts.stateKey, "state-key", "default", "key the view state is saved under")
	cmd.Flags().BoolVar(&opts.persist, "persist", true, "restore and save the view state")
	cmd.Flags().StringVar(&opts.captureDir, "capture-dir", "screenshots", "directory for F12 screenshots")
	return cmd
}

func runView(cmd *cobra.Command, opts viewOptions) error {
	logger := loggerFromContext(cmd.Context())
	cfg := configFromContext(cmd.Context())
	if opts.pages < 1 || opts.pageWidth < tileSize || opts.pageHeight < tileSize {
		return fmt.Errorf("invalid page layout: %d pages of %dx%d", opts.pages, opts.pageWidth, opts.pageHeight)
	}

	store := awesomemap.NewStateStore(openData(opts.persist, logger), logger)
	initial, restored, err := store.Load(opts.stateKey)
	if err != nil {
		logger.Warn("could not restore view", "err", err)
	}

	plane := awesomemap.NewPlane(awesomemap.Rect{Width: float64(opts.width), Height: float64(opts.height)})
	m := awesomemap.NewMap(plane,
		awesomemap.WithConfig(cfg),
		awesomemap.WithLogger(logger),
		awesomemap.WithInitialState(initial),
	)
	m.SetContentSize(awesomemap.Size{
		Width:  float64(opts.pages * opts.pageWidth),
		Height: float64(opts.pageHeight),
	})
	if opts.pages > 1 {
		nav := &awesomemap.SwipeNavigation{PageWidth: float64(opts.pageWidth), Pages: opts.pages}
		nav.PageChanged().Subscribe(func(p int) { logger.Info("page", "index", p) })
		m.AddInterceptor(nav)
	}
	installInterceptors(m)

	fs, _ := m.Scheduler().(*awesomemap.FrameScheduler)
	rec := awesomemap.NewRecognizer(m, plane, cfg.Input)
	m.AttachInput(awesomemap.NewEbitenInput(rec, fs.Now))
	if restored {
		logger.Info("restored view", "key", opts.stateKey, "state", initial)
	}

	v := &viewer{
		m:       m,
		plane:   plane,
		content: newTestPage(opts.pages, opts.pageWidth, opts.pageHeight),
		hud:     ebiten.NewImage(220, 48),
		logger:  logger,
		opts:    opts,
	}

	ebiten.SetWindowTitle("awesomemap")
	ebiten.SetWindowSize(opts.width, opts.height)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	err = ebiten.RunGame(v)
	m.Dispose()
	if err != nil && !errors.Is(err, ebiten.Termination) {
		return err
	}
	if err := store.Save(opts.stateKey, v.final); err != nil {
		return err
	}
	return nil
}

// openData opens the gdata storage, or returns nil when persistence is off or
// unavailable.
func openData(persist bool, logger *charmlog.Logger) *gdata.Manager {
	if !persist {
		return nil
	}
	data, err := gdata.Open(gdata.Config{AppName: "awesomemap"})
	if err != nil {
		logger.Warn("view state will not be saved", "err", err)
		return nil
	}
	return data
}

// viewer is the ebiten.Game of the view command.
type viewer struct {
	m       *awesomemap.Map
	plane   *awesomemap.Plane
	content *ebiten.Image
	hud     *ebiten.Image
	hudAge  time.Duration
	logger  *charmlog.Logger
	opts    viewOptions
	final   awesomemap.TransformState
	capture bool
}

func (v *viewer) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		v.final = v.m.State()
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		v.m.CancelTransformation()
		reset := awesomemap.IdentityState()
		reset.Duration = v.m.Config().AnimationDuration()
		v.m.TransformTo(reset)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyF12) {
		v.capture = true
	}

	dt := time.Second / time.Duration(ebiten.TPS())
	v.m.Update(dt)
	v.final = v.m.State()

	v.hudAge += dt
	if v.hudAge >= hudRefresh {
		v.hudAge = 0
		s := v.plane.Transform()
		v.hud.Clear()
		v.hud.Fill(color.RGBA{0, 0, 0, 128})
		ebitenutil.DebugPrint(v.hud, fmt.Sprintf("FPS: %.1f\nscale %.2f\nx %.0f y %.0f",
			ebiten.ActualFPS(), s.Scale, s.TranslateX, s.TranslateY))
	}
	return nil
}

func (v *viewer) Draw(screen *ebiten.Image) {
	screen.Fill(color.RGBA{0x23, 0x1e, 0x2d, 0xff})
	v.plane.Draw(screen, v.content)
	screen.DrawImage(v.hud, nil)
	if v.capture {
		v.capture = false
		path, err := capture(screen, v.opts.captureDir)
		if err != nil {
			v.logger.Error("screenshot failed", "err", err)
			return
		}
		v.logger.Info("screenshot", "path", path)
	}
}

func (v *viewer) Layout(outsideWidth, outsideHeight int) (int, int) {
	b := v.plane.Bounds()
	if int(b.Width) != outsideWidth || int(b.Height) != outsideHeight {
		v.plane.SetBounds(awesomemap.Rect{Width: float64(outsideWidth), Height: float64(outsideHeight)})
		v.m.SetViewportSize(awesomemap.Size{Width: float64(outsideWidth), Height: float64(outsideHeight)})
	}
	return outsideWidth, outsideHeight
}

// newTestPage draws a checkerboard with a colored band per page.
func newTestPage(pages, pageW, pageH int) *ebiten.Image {
	img := ebiten.NewImage(pages*pageW, pageH)
	light := color.RGBA{0xe8, 0xe8, 0xe8, 0xff}
	dark := color.RGBA{0xb0, 0xb0, 0xb0, 0xff}
	bands := []color.RGBA{
		{0xe6, 0x4d, 0x4d, 0xff},
		{0x4d, 0xb3, 0xe6, 0xff},
		{0x4d, 0xe6, 0x80, 0xff},
		{0xff, 0xb3, 0x33, 0xff},
	}
	tile := ebiten.NewImage(tileSize, tileSize)
	for ty := 0; ty*tileSize < pageH; ty++ {
		for tx := 0; tx*tileSize < pages*pageW; tx++ {
			c := light
			if (tx+ty)%2 == 1 {
				c = dark
			}
			tile.Fill(c)
			op := &ebiten.DrawImageOptions{}
			op.GeoM.Translate(float64(tx*tileSize), float64(ty*tileSize))
			img.DrawImage(tile, op)
		}
	}
	band := ebiten.NewImage(pageW, tileSize/2)
	for p := range pages {
		band.Fill(bands[p%len(bands)])
		op := &ebiten.DrawImageOptions{}
		op.GeoM.Translate(float64(p*pageW), 0)
		img.DrawImage(band, op)
		ebitenutil.DebugPrintAt(img, fmt.Sprintf("page %d", p+1), p*pageW+8, 8)
	}
	return img
}
