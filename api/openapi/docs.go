// Package openapi 由 swag 注解整理的接口文档
package openapi

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "contact": {},
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/healthz": {
            "get": {
                "tags": [
                    "系统"
                ],
                "summary": "健康检查",
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "成功",
                        "schema": {
                            "$ref": "#/definitions/response.Body"
                        }
                    },
                    "default": {
                        "description": "失败",
                        "schema": {
                            "$ref": "#/definitions/response.Body"
                        }
                    }
                }
            }
        },
        "/oauth2/authorization/github": {
            "get": {
                "tags": [
                    "认证"
                ],
                "summary": "GitHub 登录",
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "302": {
                        "description": "成功",
                        "schema": {
                            "$ref": "#/definitions/response.Body"
                        }
                    },
                    "default": {
                        "description": "失败",
                        "schema": {
                            "$ref": "#/definitions/response.Body"
                        }
                    }
                },
                "parameters": [
                    {
                        "type": "string",
                        "name": "redirect_uri",
                        "in": "query",
                        "required": false
                    }
                ]
            }
        },
        "/login/oauth2/code/github": {
            "get": {
                "tags": [
                    "认证"
                ],
                "summary": "GitHub 授权回调",
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "302": {
                        "description": "成功",
                        "schema": {
                            "$ref": "#/definitions/response.Body"
                        }
                    },
                    "default": {
                        "description": "失败",
                        "schema": {
                            "$ref": "#/definitions/response.Body"
                        }
                    }
                },
                "parameters": [
                    {
                        "type": "string",
                        "name": "code",
                        "in": "query",
                        "required": false
                    },
                    {
                        "type": "string",
                        "name": "state",
                        "in": "query",
                        "required": true
                    }
                ]
            }
        },
        "/api/auth/me": {
            "get": {
                "tags": [
                    "认证"
                ],
                "summary": "获取当前用户",
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "成功",
                        "schema": {
                            "$ref": "#/definitions/response.Body"
                        }
                    },
                    "default": {
                        "description": "失败",
                        "schema": {
                            "$ref": "#/definitions/response.Body"
                        }
                    }
                },
                "security": [
                    {
                        "BearerAuth": []
                    }
                ]
            }
        },
        "/api/auth/logout": {
            "post": {
                "tags": [
                    "认证"
                ],
                "summary": "退出登录",
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "成功",
                        "schema": {
                            "$ref": "#/definitions/response.Body"
                        }
                    },
                    "default": {
                        "description": "失败",
                        "schema": {
                            "$ref": "#/definitions/response.Body"
                        }
                    }
                },
                "security": [
                    {
                        "BearerAuth": []
                    }
                ]
            }
        },
        "/api/comments": {
            "post": {
                "tags": [
                    "评论"
                ],
                "summary": "发表评论",
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "201": {
                        "description": "成功",
                        "schema": {
                            "$ref": "#/definitions/response.Body"
                        }
                    },
                    "default": {
                        "description": "失败",
                        "schema": {
                            "$ref": "#/definitions/response.Body"
                        }
                    }
                },
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "parameters": [
                    {
                        "name": "request",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/dto.CommentCreateRequest"
                        }
                    }
                ]
            }
        },
        "/api/comments/article": {
            "get": {
                "tags": [
                    "评论"
                ],
                "summary": "获取文章评论",
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "成功",
                        "schema": {
                            "$ref": "#/definitions/response.Body"
                        }
                    },
                    "default": {
                        "description": "失败",
                        "schema": {
                            "$ref": "#/definitions/response.Body"
                        }
                    }
                },
                "parameters": [
                    {
                        "type": "string",
                        "name": "path",
                        "in": "query",
                        "required": true
                    }
                ]
            }
        },
        "/api/comments/search": {
            "get": {
                "tags": [
                    "评论"
                ],
                "summary": "搜索评论",
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "成功",
                        "schema": {
                            "$ref": "#/definitions/response.Body"
                        }
                    },
                    "default": {
                        "description": "失败",
                        "schema": {
                            "$ref": "#/definitions/response.Body"
                        }
                    }
                },
                "parameters": [
                    {
                        "type": "string",
                        "name": "q",
                        "in": "query",
                        "required": true
                    },
                    {
                        "type": "integer",
                        "name": "limit",
                        "in": "query",
                        "required": false
                    }
                ]
            }
        },
        "/api/comment-likes/{comment_id}": {
            "post": {
                "tags": [
                    "点赞"
                ],
                "summary": "点赞评论",
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "成功",
                        "schema": {
                            "$ref": "#/definitions/response.Body"
                        }
                    },
                    "default": {
                        "description": "失败",
                        "schema": {
                            "$ref": "#/definitions/response.Body"
                        }
                    }
                },
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "parameters": [
                    {
                        "type": "integer",
                        "name": "comment_id",
                        "in": "path",
                        "required": true
                    }
                ]
            }
        },
        "/api/comment-likes/{comment_id}/cancel": {
            "patch": {
                "tags": [
                    "点赞"
                ],
                "summary": "取消点赞",
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "成功",
                        "schema": {
                            "$ref": "#/definitions/response.Body"
                        }
                    },
                    "default": {
                        "description": "失败",
                        "schema": {
                            "$ref": "#/definitions/response.Body"
                        }
                    }
                },
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "parameters": [
                    {
                        "type": "integer",
                        "name": "comment_id",
                        "in": "path",
                        "required": true
                    }
                ]
            }
        },
        "/api/comment-likes/comment/{comment_id}": {
            "get": {
                "tags": [
                    "点赞"
                ],
                "summary": "评论的点赞列表",
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "成功",
                        "schema": {
                            "$ref": "#/definitions/response.Body"
                        }
                    },
                    "default": {
                        "description": "失败",
                        "schema": {
                            "$ref": "#/definitions/response.Body"
                        }
                    }
                },
                "parameters": [
                    {
                        "type": "integer",
                        "name": "comment_id",
                        "in": "path",
                        "required": true
                    }
                ]
            }
        },
        "/admin/api/users": {
            "get": {
                "tags": [
                    "用户管理"
                ],
                "summary": "获取全部用户",
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "成功",
                        "schema": {
                            "$ref": "#/definitions/response.Body"
                        }
                    },
                    "default": {
                        "description": "失败",
                        "schema": {
                            "$ref": "#/definitions/response.Body"
                        }
                    }
                },
                "security": [
                    {
                        "BearerAuth": []
                    }
                ]
            },
            "post": {
                "tags": [
                    "用户管理"
                ],
                "summary": "创建用户",
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "201": {
                        "description": "成功",
                        "schema": {
                            "$ref": "#/definitions/response.Body"
                        }
                    },
                    "default": {
                        "description": "失败",
                        "schema": {
                            "$ref": "#/definitions/response.Body"
                        }
                    }
                },
                "security": [
                    {
                        "BearerAuth": []
                    }
                ]
            }
        },
        "/admin/api/users/{id}": {
            "get": {
                "tags": [
                    "用户管理"
                ],
                "summary": "获取用户",
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "成功",
                        "schema": {
                            "$ref": "#/definitions/response.Body"
                        }
                    },
                    "default": {
                        "description": "失败",
                        "schema": {
                            "$ref": "#/definitions/response.Body"
                        }
                    }
                },
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "parameters": [
                    {
                        "type": "integer",
                        "name": "id",
                        "in": "path",
                        "required": true
                    }
                ]
            },
            "put": {
                "tags": [
                    "用户管理"
                ],
                "summary": "修改用户权限",
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "成功",
                        "schema": {
                            "$ref": "#/definitions/response.Body"
                        }
                    },
                    "default": {
                        "description": "失败",
                        "schema": {
                            "$ref": "#/definitions/response.Body"
                        }
                    }
                },
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "parameters": [
                    {
                        "type": "integer",
                        "name": "id",
                        "in": "path",
                        "required": true
                    }
                ]
            },
            "delete": {
                "tags": [
                    "用户管理"
                ],
                "summary": "删除用户",
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "成功",
                        "schema": {
                            "$ref": "#/definitions/response.Body"
                        }
                    },
                    "default": {
                        "description": "失败",
                        "schema": {
                            "$ref": "#/definitions/response.Body"
                        }
                    }
                },
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "parameters": [
                    {
                        "type": "integer",
                        "name": "id",
                        "in": "path",
                        "required": true
                    }
                ]
            }
        },
        "/admin/api/users/github/{external_id}": {
            "get": {
                "tags": [
                    "用户管理"
                ],
                "summary": "按 GitHub ID 获取用户",
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "成功",
                        "schema": {
                            "$ref": "#/definitions/response.Body"
                        }
                    },
                    "default": {
                        "description": "失败",
                        "schema": {
                            "$ref": "#/definitions/response.Body"
                        }
                    }
                },
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "parameters": [
                    {
                        "type": "integer",
                        "name": "external_id",
                        "in": "path",
                        "required": true
                    }
                ]
            }
        },
        "/admin/api/users/email/{email}": {
            "get": {
                "tags": [
                    "用户管理"
                ],
                "summary": "按邮箱获取用户",
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "成功",
                        "schema": {
                            "$ref": "#/definitions/response.Body"
                        }
                    },
                    "default": {
                        "description": "失败",
                        "schema": {
                            "$ref": "#/definitions/response.Body"
                        }
                    }
                },
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "parameters": [
                    {
                        "type": "string",
                        "name": "email",
                        "in": "path",
                        "required": true
                    }
                ]
            }
        },
        "/admin/api/users/username/{username}": {
            "get": {
                "tags": [
                    "用户管理"
                ],
                "summary": "按登录名获取用户",
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "成功",
                        "schema": {
                            "$ref": "#/definitions/response.Body"
                        }
                    },
                    "default": {
                        "description": "失败",
                        "schema": {
                            "$ref": "#/definitions/response.Body"
                        }
                    }
                },
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "parameters": [
                    {
                        "type": "string",
                        "name": "username",
                        "in": "path",
                        "required": true
                    }
                ]
            }
        },
        "/admin/api/comments": {
            "get": {
                "tags": [
                    "评论管理"
                ],
                "summary": "获取全部评论",
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "成功",
                        "schema": {
                            "$ref": "#/definitions/response.Body"
                        }
                    },
                    "default": {
                        "description": "失败",
                        "schema": {
                            "$ref": "#/definitions/response.Body"
                        }
                    }
                },
                "security": [
                    {
                        "BearerAuth": []
                    }
                ]
            }
        },
        "/admin/api/comments/user/{id}": {
            "get": {
                "tags": [
                    "评论管理"
                ],
                "summary": "获取用户评论",
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "成功",
                        "schema": {
                            "$ref": "#/definitions/response.Body"
                        }
                    },
                    "default": {
                        "description": "失败",
                        "schema": {
                            "$ref": "#/definitions/response.Body"
                        }
                    }
                },
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "parameters": [
                    {
                        "type": "integer",
                        "name": "id",
                        "in": "path",
                        "required": true
                    }
                ]
            }
        },
        "/admin/api/comments/username/{username}": {
            "get": {
                "tags": [
                    "评论管理"
                ],
                "summary": "按登录名获取评论",
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "成功",
                        "schema": {
                            "$ref": "#/definitions/response.Body"
                        }
                    },
                    "default": {
                        "description": "失败",
                        "schema": {
                            "$ref": "#/definitions/response.Body"
                        }
                    }
                },
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "parameters": [
                    {
                        "type": "string",
                        "name": "username",
                        "in": "path",
                        "required": true
                    }
                ]
            }
        },
        "/admin/api/comments/time": {
            "get": {
                "tags": [
                    "评论管理"
                ],
                "summary": "按时间区间获取评论",
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "成功",
                        "schema": {
                            "$ref": "#/definitions/response.Body"
                        }
                    },
                    "default": {
                        "description": "失败",
                        "schema": {
                            "$ref": "#/definitions/response.Body"
                        }
                    }
                },
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "parameters": [
                    {
                        "type": "string",
                        "name": "start",
                        "in": "query",
                        "required": true
                    },
                    {
                        "type": "string",
                        "name": "end",
                        "in": "query",
                        "required": true
                    }
                ]
            }
        },
        "/admin/api/comments/{id}": {
            "delete": {
                "tags": [
                    "评论管理"
                ],
                "summary": "删除评论",
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "成功",
                        "schema": {
                            "$ref": "#/definitions/response.Body"
                        }
                    },
                    "default": {
                        "description": "失败",
                        "schema": {
                            "$ref": "#/definitions/response.Body"
                        }
                    }
                },
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "parameters": [
                    {
                        "type": "integer",
                        "name": "id",
                        "in": "path",
                        "required": true
                    }
                ]
            }
        },
        "/admin/api/comments/article": {
            "delete": {
                "tags": [
                    "评论管理"
                ],
                "summary": "删除文章评论",
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "成功",
                        "schema": {
                            "$ref": "#/definitions/response.Body"
                        }
                    },
                    "default": {
                        "description": "失败",
                        "schema": {
                            "$ref": "#/definitions/response.Body"
                        }
                    }
                },
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "parameters": [
                    {
                        "type": "string",
                        "name": "path",
                        "in": "query",
                        "required": true
                    }
                ]
            }
        },
        "/admin/api/comment-likes/username/{username}": {
            "get": {
                "tags": [
                    "点赞管理"
                ],
                "summary": "用户的点赞列表",
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "成功",
                        "schema": {
                            "$ref": "#/definitions/response.Body"
                        }
                    },
                    "default": {
                        "description": "失败",
                        "schema": {
                            "$ref": "#/definitions/response.Body"
                        }
                    }
                },
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "parameters": [
                    {
                        "type": "string",
                        "name": "username",
                        "in": "path",
                        "required": true
                    }
                ]
            }
        },
        "/admin/api/comment-likes/user/{id}": {
            "delete": {
                "tags": [
                    "点赞管理"
                ],
                "summary": "删除用户的全部点赞",
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "成功",
                        "schema": {
                            "$ref": "#/definitions/response.Body"
                        }
                    },
                    "default": {
                        "description": "失败",
                        "schema": {
                            "$ref": "#/definitions/response.Body"
                        }
                    }
                },
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "parameters": [
                    {
                        "type": "integer",
                        "name": "id",
                        "in": "path",
                        "required": true
                    }
                ]
            }
        },
        "/admin/api/comment-likes/comment/{comment_id}": {
            "delete": {
                "tags": [
                    "点赞管理"
                ],
                "summary": "删除评论的全部点赞",
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "成功",
                        "schema": {
                            "$ref": "#/definitions/response.Body"
                        }
                    },
                    "default": {
                        "description": "失败",
                        "schema": {
                            "$ref": "#/definitions/response.Body"
                        }
                    }
                },
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "parameters": [
                    {
                        "type": "integer",
                        "name": "comment_id",
                        "in": "path",
                        "required": true
                    }
                ]
            }
        }
    },
    "definitions": {
        "response.Body": {
            "type": "object",
            "properties": {
                "code": {
                    "type": "integer"
                },
                "message": {
                    "type": "string"
                },
                "data": {}
            }
        },
        "dto.CommentCreateRequest": {
            "type": "object",
            "required": [
                "article_path",
                "content"
            ],
            "properties": {
                "article_path": {
                    "type": "string"
                },
                "content": {
                    "type": "string"
                }
            }
        }
    },
    "securityDefinitions": {
        "BearerAuth": {
            "description": "输入格式: Bearer {token}",
            "type": "apiKey",
            "name": "Authorization",
            "in": "header"
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "127.0.0.1:8000",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Comment Service API",
	Description:      "文章评论服务 API",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
