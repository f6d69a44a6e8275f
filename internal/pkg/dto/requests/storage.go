package requests

type UploadObject struct {
	BucketName  string
	ObjectName  string
	ContentType string
	Data        []byte
}
