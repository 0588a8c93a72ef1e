package landmark

import (
	"fmt"

	"gocv.io/x/gocv"
)

// CameraSource captures frames from a local V4L2 webcam and runs YuNet
// landmark extraction on each one. Frames are mirrored horizontally so the
// user's left/right head movement matches the on-screen direction.
//
// The capture device is opened once and held for the process lifetime.
// Not safe for concurrent use; the frame loop is the single caller.
type CameraSource struct {
	cap      *gocv.VideoCapture
	detector *YuNetDetector
	frame    gocv.Mat
	mirrored gocv.Mat
}

// OpenCamera opens the capture device and loads the detector model.
// Failure here is fatal at startup per the error-handling contract.
func OpenCamera(device int, detectorCfg DetectorConfig) (*CameraSource, error) {
	cap, err := gocv.OpenVideoCapture(device)
	if err != nil {
		return nil, fmt.Errorf("landmark: open camera %d: %w", device, err)
	}
	if !cap.IsOpened() {
		cap.Close()
		return nil, fmt.Errorf("landmark: camera %d is not available", device)
	}

	detector, err := NewYuNet(detectorCfg)
	if err != nil {
		cap.Close()
		return nil, fmt.Errorf("landmark: load detector: %w", err)
	}

	return &CameraSource{
		cap:      cap,
		detector: detector,
		frame:    gocv.NewMat(),
		mirrored: gocv.NewMat(),
	}, nil
}

// Next captures one frame and extracts the tracked landmark set.
// A failed read or an empty frame returns an error; the caller skips the
// frame and the next poll cycle retries naturally.
func (c *CameraSource) Next() (Set, bool, error) {
	if ok := c.cap.Read(&c.frame); !ok {
		return Set{}, false, fmt.Errorf("landmark: frame read failed")
	}
	if c.frame.Empty() {
		return Set{}, false, fmt.Errorf("landmark: empty frame")
	}

	// Mirror for a mirror-like view: flip code 1 = horizontal.
	gocv.Flip(c.frame, &c.mirrored, 1)

	faces, err := c.detector.Detect(c.mirrored)
	if err != nil {
		return Set{}, false, fmt.Errorf("landmark: detect: %w", err)
	}

	best := SelectBest(faces)
	if best == nil {
		return Set{}, false, nil
	}

	w := c.mirrored.Cols()
	h := c.mirrored.Rows()
	return best.Landmarks(w, h), true, nil
}

// Close releases the capture device and the detector.
func (c *CameraSource) Close() error {
	c.frame.Close()
	c.mirrored.Close()
	err := c.detector.Close()
	if cerr := c.cap.Close(); err == nil {
		err = cerr
	}
	return err
}
