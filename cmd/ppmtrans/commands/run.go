package commands

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/ajroetker/go-locality/internal/config"
	"github.com/ajroetker/go-locality/internal/logger"
	"github.com/ajroetker/go-locality/locality"
	"github.com/ajroetker/go-locality/locality/a2methods"
	"github.com/ajroetker/go-locality/locality/contrib/cputime"
	"github.com/ajroetker/go-locality/locality/contrib/pnm"
	"github.com/ajroetker/go-locality/locality/contrib/transform"
	"github.com/ajroetker/go-locality/locality/contrib/workerpool"
	"github.com/ajroetker/go-locality/locality/uarray2b"
)

// result describes one completed transformation.
type result struct {
	op        transform.Op
	order     locality.Order
	layout    string
	width     int
	height    int
	blockSize int
	workers   int
	elapsed   time.Duration
	parallel  *uarray2b.Stats
}

func runTransform(cmd *cobra.Command, args []string, cfg *config.Config) error {
	in := cmd.InOrStdin()
	if len(args) == 1 {
		f, err := os.Open(args[0])
		if err != nil {
			return fmt.Errorf("could not open input: %w", err)
		}
		defer f.Close()
		in = f
	}

	out := bufio.NewWriter(cmd.OutOrStdout())
	res, err := transformImage(in, out, cfg)
	if err != nil {
		return err
	}
	if err := out.Flush(); err != nil {
		return fmt.Errorf("could not write output: %w", err)
	}

	if cfg.Output.TimeFile != "" {
		if err := writeTimeFile(cfg.Output.TimeFile, res); err != nil {
			return err
		}
	}
	if cfg.Output.Stats {
		fmt.Fprintln(cmd.ErrOrStderr(), renderSummary(cmd.ErrOrStderr(), res))
	}
	return nil
}

// transformImage reads one image from in, transforms it according to cfg
// and encodes the result to out.
func transformImage(in io.Reader, out io.Writer, cfg *config.Config) (*result, error) {
	op, err := opFor(cfg.Transform)
	if err != nil {
		return nil, err
	}
	order, err := locality.ParseOrder(cfg.Layout.Order)
	if err != nil {
		return nil, err
	}
	format, err := pnm.ParseFormat(cfg.Output.Format)
	if err != nil {
		return nil, err
	}
	methods := methodsFor(order, cfg.Layout)

	src, err := pnm.Read(in, methods)
	if err != nil {
		return nil, err
	}
	defer release(src.Pixels)
	logger.Info("image read",
		"width", src.Width, "height", src.Height,
		"denominator", src.Denominator, "layout", methods.Name,
		"block_size", src.Pixels.BlockSize())

	res := &result{
		op:        op,
		order:     order,
		layout:    methods.Name,
		width:     src.Width,
		height:    src.Height,
		blockSize: src.Pixels.BlockSize(),
		workers:   1,
	}

	mapFn, err := methods.Mapper(order)
	if err != nil {
		return nil, err
	}
	if order == locality.BlockMajor && cfg.Layout.Workers != 1 {
		pool := workerpool.New(cfg.Layout.Workers)
		defer pool.Close()
		res.workers = pool.NumWorkers()
		res.parallel = &uarray2b.Stats{}
		mapFn = a2methods.ParallelBlockMajor[pnm.RGB](pool, res.parallel)
	}

	dstWidth, dstHeight := transform.DestSize(op, src.Width, src.Height)
	dst, err := pnm.New(dstWidth, dstHeight, src.Denominator, methods)
	if err != nil {
		return nil, err
	}
	defer release(dst.Pixels)

	res.elapsed, err = cputime.Measure(func() error {
		return transform.Into(dst.Pixels, src.Pixels, op, mapFn)
	})
	if err != nil {
		return nil, err
	}
	logger.Info("image transformed", "op", op.String(), "order", order.String(),
		"workers", res.workers, "elapsed", res.elapsed)

	if err := pnm.Write(out, dst, pnm.EncodeOptions{
		Format:  format,
		Plain:   cfg.Output.Plain,
		Quality: cfg.Output.Quality,
	}); err != nil {
		return nil, err
	}
	return res, nil
}

func opFor(t config.TransformConfig) (transform.Op, error) {
	switch {
	case t.Transpose:
		return transform.Transpose, nil
	case t.Flip != "":
		return transform.ParseFlip(t.Flip)
	default:
		return transform.ParseRotation(t.Rotate)
	}
}

// methodsFor picks the plain suite for row- and column-major order, and a
// blocked suite sized by the layout configuration otherwise.
func methodsFor(order locality.Order, l config.LayoutConfig) *a2methods.Methods[pnm.RGB] {
	if order != locality.BlockMajor {
		return a2methods.Plain[pnm.RGB]()
	}
	switch {
	case l.BlockSize > 0:
		return a2methods.Blocked[pnm.RGB](l.BlockSize)
	case l.BlockBytes > 0:
		return a2methods.BlockedWithBudget[pnm.RGB](l.BlockBytes)
	default:
		return a2methods.Blocked64K[pnm.RGB]()
	}
}

func release(a locality.Array2[pnm.RGB]) {
	if r, ok := a.(interface{ Release() }); ok {
		r.Release()
	}
}

func writeTimeFile(path string, res *result) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("could not create time file: %w", err)
	}
	rep := cputime.Report{
		Pixels:  res.width * res.height,
		Op:      res.op.String(),
		Elapsed: res.elapsed,
	}
	if deg, ok := res.op.Degrees(); ok {
		rep.Degrees = &deg
	}
	if _, err := rep.WriteTo(f); err != nil {
		f.Close()
		return fmt.Errorf("could not write time file: %w", err)
	}
	return f.Close()
}
