/*
go-kinectviz provides the frame conversion and overlay rendering pipeline
used to visualise the streams of a time-of-flight depth sensor such as
the Kinect v2.

The root package holds the sensor data model (frames, bodies, joints) and
the collaborator interfaces the pipeline consumes: a FrameSource that
delivers multi-source frames and a CoordinateMapper that projects camera
space points into depth space.

Sub packages:

	convert   infrared, depth and body-index to BGRA pixel conversion
	scene     drawable primitives making up an overlay
	skeleton  joints, bones, hand states and clipped frame edges
	face      face bounding boxes, landmarks, rotation and properties
	display   display mode controller routing frames to the above
	render    GoCV rendering of pixel buffers and overlay scenes
	source    synthetic frame source and pinhole coordinate mapper
	config    YAML configuration of the viewer

See example/viewer for a command line viewer wiring the packages together.
*/
package kinectviz
