package landmark

import (
	"fmt"
	"image"
	"os"
	"sync"

	"gocv.io/x/gocv"
)

// DetectorConfig holds YuNet detector configuration.
type DetectorConfig struct {
	ModelPath        string  // Path to ONNX model
	ConfidenceThresh float64 // Minimum confidence (default 0.5)
	InputWidth       int     // Model input width
	InputHeight      int     // Model input height
}

// DefaultDetectorConfig returns production defaults for YuNet.
func DefaultDetectorConfig(modelPath string) DetectorConfig {
	return DetectorConfig{
		ModelPath:        modelPath,
		ConfidenceThresh: 0.5,
		InputWidth:       320,
		InputHeight:      320,
	}
}

// Face is one detected face: bounding box plus the five YuNet facial
// landmarks, all normalized to 0-1.
type Face struct {
	X, Y, W, H float64 // Bounding box (top-left origin)
	RightEye   [2]float64
	LeftEye    [2]float64
	NoseTip    [2]float64
	Confidence float64
}

// Landmarks derives the tracked landmark set from the detection.
// The forehead and chin come from the bounding box top/bottom center;
// the nose bridge is the midpoint between the eyes.
func (f Face) Landmarks(frameW, frameH int) Set {
	cx := f.X + f.W/2
	bridgeX := (f.RightEye[0] + f.LeftEye[0]) / 2
	bridgeY := (f.RightEye[1] + f.LeftEye[1]) / 2

	var s Set
	s.FrameWidth = frameW
	s.FrameHeight = frameH
	s.Points[Forehead] = Point{X: int(cx * float64(frameW)), Y: int(f.Y * float64(frameH))}
	s.Points[Chin] = Point{X: int(cx * float64(frameW)), Y: int((f.Y + f.H) * float64(frameH))}
	s.Points[NoseBridge] = Point{X: int(bridgeX * float64(frameW)), Y: int(bridgeY * float64(frameH))}
	return s
}

// YuNetDetector wraps OpenCV's FaceDetectorYN for single-face landmark
// extraction.
type YuNetDetector struct {
	detector gocv.FaceDetectorYN
	config   DetectorConfig
	mu       sync.Mutex // Protects inference
}

// NewYuNet creates a YuNet face detector using GoCV's built-in FaceDetectorYN.
func NewYuNet(cfg DetectorConfig) (*YuNetDetector, error) {
	if _, err := os.Stat(cfg.ModelPath); os.IsNotExist(err) {
		return nil, fmt.Errorf("model file not found: %s", cfg.ModelPath)
	}

	detector := gocv.NewFaceDetectorYNWithParams(
		cfg.ModelPath,
		"", // No config file needed for ONNX
		image.Pt(cfg.InputWidth, cfg.InputHeight),
		float32(cfg.ConfidenceThresh),
		0.3,  // NMS threshold
		5000, // Top K
		int(gocv.NetBackendDefault),
		int(gocv.NetTargetCPU),
	)

	return &YuNetDetector{
		detector: detector,
		config:   cfg,
	}, nil
}

// Detect finds faces in the frame and returns them normalized to 0-1.
func (d *YuNetDetector) Detect(img gocv.Mat) ([]Face, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if img.Empty() {
		return nil, fmt.Errorf("empty image")
	}

	imgW := float64(img.Cols())
	imgH := float64(img.Rows())

	d.detector.SetInputSize(image.Pt(img.Cols(), img.Rows()))

	faces := gocv.NewMat()
	defer faces.Close()

	d.detector.Detect(img, &faces)

	// YuNet output format (15 columns per row):
	// 0-3: x, y, w, h (bounding box in pixels)
	// 4-13: 5 facial landmarks (x,y pairs): right eye, left eye, nose tip,
	//       right mouth corner, left mouth corner
	// 14: face score
	var result []Face
	for r := 0; r < faces.Rows(); r++ {
		result = append(result, Face{
			X:          float64(faces.GetFloatAt(r, 0)) / imgW,
			Y:          float64(faces.GetFloatAt(r, 1)) / imgH,
			W:          float64(faces.GetFloatAt(r, 2)) / imgW,
			H:          float64(faces.GetFloatAt(r, 3)) / imgH,
			RightEye:   [2]float64{float64(faces.GetFloatAt(r, 4)) / imgW, float64(faces.GetFloatAt(r, 5)) / imgH},
			LeftEye:    [2]float64{float64(faces.GetFloatAt(r, 6)) / imgW, float64(faces.GetFloatAt(r, 7)) / imgH},
			NoseTip:    [2]float64{float64(faces.GetFloatAt(r, 8)) / imgW, float64(faces.GetFloatAt(r, 9)) / imgH},
			Confidence: float64(faces.GetFloatAt(r, 14)),
		})
	}

	return result, nil
}

// Close releases the detector resources.
func (d *YuNetDetector) Close() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.detector.Close()
	return nil
}

// SelectBest picks the best face from multiple detections.
// Priority: confidence * 0.7 + area * 0.3.
func SelectBest(faces []Face) *Face {
	if len(faces) == 0 {
		return nil
	}
	if len(faces) == 1 {
		return &faces[0]
	}

	maxArea := 0.0
	for _, f := range faces {
		if a := f.W * f.H; a > maxArea {
			maxArea = a
		}
	}

	bestScore := -1.0
	var best *Face
	for i := range faces {
		score := faces[i].Confidence*0.7 + (faces[i].W*faces[i].H/maxArea)*0.3
		if score > bestScore {
			bestScore = score
			best = &faces[i]
		}
	}
	return best
}
