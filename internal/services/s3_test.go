package services

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestS3Upload(t *testing.T) {
	var input *s3.PutObjectInput
	client := new(MockS3Client)
	client.On("PutObject", mock.Anything, mock.AnythingOfType("*s3.PutObjectInput")).
		Run(func(args mock.Arguments) { input = args.Get(1).(*s3.PutObjectInput) }).
		Return(&s3.PutObjectOutput{}, nil).Once()

	u := NewS3UploaderWithClient(client, "aed-bucket", "eu-west-1")
	url, err := u.Upload(context.Background(), strings.NewReader("png-bytes"), "Front.PNG")
	require.NoError(t, err)

	require.NotNil(t, input)
	body, err := io.ReadAll(input.Body)
	require.NoError(t, err)
	assert.Equal(t, "png-bytes", string(body))
	assert.Equal(t, "aed-bucket", *input.Bucket)
	assert.Equal(t, "image/png", *input.ContentType)
	assert.True(t, strings.HasPrefix(*input.Key, "aed-images/"))
	assert.True(t, strings.HasPrefix(url, "https://aed-bucket.s3.eu-west-1.amazonaws.com/"+*input.Key))
	assert.True(t, strings.HasSuffix(url, ".png"))
	client.AssertExpectations(t)
}

func TestS3UploadFailure(t *testing.T) {
	client := new(MockS3Client)
	client.On("PutObject", mock.Anything, mock.Anything).Return(nil, errors.New("access denied")).Once()

	u := NewS3UploaderWithClient(client, "aed-bucket", "us-east-1")
	_, err := u.Upload(context.Background(), strings.NewReader("x"), "a.jpg")
	assert.ErrorContains(t, err, "access denied")
}
