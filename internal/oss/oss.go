package oss

import (
	"fmt"
	"path"
	"strings"
	"time"

	"gitee.com/taoJie_1/nlu-agent/model/config"
	"github.com/aliyun/aliyun-oss-go-sdk/oss"
)

// Service 定义对象存储服务的接口
type Service interface {
	// UploadLocalFile 上传本地文件(如训练数据导出产物), 返回对象键
	UploadLocalFile(localPath, remoteDir string) (string, error)
	// GetURL 为给定的对象键生成可公开访问的 URL
	GetURL(objectKey string) string
	// Close 关闭底层客户端连接
	Close() error
}

type aliyunOssService struct {
	client   *oss.Client
	config   config.Oss
	location *time.Location // 注入时区信息
}

// NewClient 创建一个新的 OSS 服务客户端
func NewClient(cfg config.Oss, location *time.Location) (Service, error) {
	// OSS SDK 的 Endpoint 不包含协议头，如果配置中包含了协议头，需要去除
	endpoint := cfg.Endpoint
	endpoint = strings.TrimPrefix(endpoint, "http://")
	endpoint = strings.TrimPrefix(endpoint, "https://")

	client, err := oss.New(endpoint, cfg.AccessKeyId, cfg.AccessKeySecret)
	if err != nil {
		return nil, fmt.Errorf("创建阿里云OSS客户端失败: %w", err)
	}

	return &aliyunOssService{
		client:   client,
		config:   cfg,
		location: location,
	}, nil
}

func (s *aliyunOssService) UploadLocalFile(localPath, remoteDir string) (string, error) {
	bucket, err := s.client.Bucket(s.config.Bucket)
	if err != nil {
		return "", fmt.Errorf("获取OSS bucket失败: %w", err)
	}

	// 按日期分目录, 同名文件覆盖即为幂等
	dateDir := time.Now().In(s.location).Format("2006/01/02")
	objectKey := path.Join(remoteDir, dateDir, path.Base(localPath))

	if err := bucket.PutObjectFromFile(objectKey, localPath); err != nil {
		return "", fmt.Errorf("上传文件到OSS失败: %w", err)
	}
	return objectKey, nil
}

func (s *aliyunOssService) GetURL(objectKey string) string {
	if s.config.Domain != "" {
		return strings.TrimRight(s.config.Domain, "/") + "/" + objectKey
	}
	return fmt.Sprintf("https://%s.%s/%s", s.config.Bucket, s.config.Endpoint, objectKey)
}

func (s *aliyunOssService) Close() error {
	// aliyun-oss-go-sdk 的客户端没有需要显式释放的连接
	return nil
}
